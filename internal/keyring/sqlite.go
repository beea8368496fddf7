package keyring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/cryptox"
	"github.com/dmitrijs2005/authvault/internal/dbx"
	"github.com/dmitrijs2005/authvault/internal/filex"
)

const deviceKeySize = 32

// SQLiteKeyring keeps the single slot in the keyring table. The password is
// sealed with AES-GCM under a key derived (argon2id) from a per-device secret
// held in a separate 0600 file, so the database alone does not reveal it.
type SQLiteKeyring struct {
	db      dbx.DBTX
	gate    Gate
	keyFile string
}

func NewSQLiteKeyring(db dbx.DBTX, gate Gate, keyFile string) *SQLiteKeyring {
	return &SQLiteKeyring{db: db, gate: gate, keyFile: keyFile}
}

// deviceKey loads the per-device secret, creating it on first use.
func (k *SQLiteKeyring) deviceKey() ([]byte, error) {
	key, err := os.ReadFile(k.keyFile)
	if err == nil {
		if len(key) != deviceKeySize {
			return nil, fmt.Errorf("device key %s has unexpected size %d", k.keyFile, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read device key: %w", err)
	}

	path, err := filex.EnsureParentDir(k.keyFile)
	if err != nil {
		return nil, err
	}

	key = common.GenerateRandByteArray(deviceKeySize)
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write device key: %w", err)
	}
	return key, nil
}

func (k *SQLiteKeyring) Store(ctx context.Context, creds Credentials, opts StoreOptions) error {
	deviceKey, err := k.deviceKey()
	if err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(32)
	sealKey := cryptox.DeriveKey(deviceKey, salt)

	ciphertext, nonce, err := cryptox.Encrypt([]byte(creds.Password), sealKey)
	if err != nil {
		return fmt.Errorf("failed to seal keyring slot: %w", err)
	}

	gated := 0
	if opts.BiometricGate {
		gated = 1
	}

	_, err = k.db.ExecContext(ctx, `
		INSERT INTO keyring (id, username, ciphertext, nonce, salt, biometric_gated)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			ciphertext = excluded.ciphertext,
			nonce = excluded.nonce,
			salt = excluded.salt,
			biometric_gated = excluded.biometric_gated
	`, creds.Username, ciphertext, nonce, salt, gated)
	if err != nil {
		return fmt.Errorf("failed to write keyring slot: %w", err)
	}
	return nil
}

func (k *SQLiteKeyring) Retrieve(ctx context.Context, prompt *Prompt) (*Credentials, error) {
	var (
		username          string
		ciphertext, nonce []byte
		salt              []byte
		gated             int
	)
	err := k.db.QueryRowContext(ctx, `
		SELECT username, ciphertext, nonce, salt, biometric_gated FROM keyring WHERE id = 1
	`).Scan(&username, &ciphertext, &nonce, &salt, &gated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring slot: %w", err)
	}

	if gated == 1 {
		if err := k.gate.Authenticate(ctx, prompt); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorBiometricFailed, err)
		}
	}

	deviceKey, err := k.deviceKey()
	if err != nil {
		return nil, err
	}

	password, err := cryptox.Decrypt(ciphertext, nonce, cryptox.DeriveKey(deviceKey, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to unseal keyring slot: %w", err)
	}

	return &Credentials{Username: username, Password: string(password)}, nil
}

func (k *SQLiteKeyring) Clear(ctx context.Context) error {
	if _, err := k.db.ExecContext(ctx, `DELETE FROM keyring WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear keyring slot: %w", err)
	}
	return nil
}

func (k *SQLiteKeyring) SupportedBiometry(ctx context.Context) (BiometryType, error) {
	return k.gate.Supported(ctx)
}
