package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("device-secret")
	salt := common.GenerateRandByteArray(32)

	k1 := DeriveKey(secret, salt)
	k2 := DeriveKey(secret, salt)
	require.Len(t, k1, 32)
	require.Equal(t, k1, k2, "same secret+salt must derive the same key")

	k3 := DeriveKey(secret, common.GenerateRandByteArray(32))
	require.NotEqual(t, k1, k3, "different salt must derive a different key")
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	plaintext := []byte("Aa1!aaaa")

	ciphertext, nonce, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ciphertext)

	out, err := Decrypt(ciphertext, nonce, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, out)
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)

	ciphertext, nonce, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, nonce, common.GenerateRandByteArray(32))
	require.Error(t, err)
}

func TestDecrypt_TamperedCiphertextFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)

	ciphertext, nonce, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Decrypt(ciphertext, nonce, key)
	require.Error(t, err)
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	_, _, err := Encrypt([]byte("x"), []byte("short"))
	require.Error(t, err)
}
