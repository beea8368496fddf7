package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/keyring"
	"github.com/stretchr/testify/require"
)

func newBiometricService(t *testing.T, ring *fakeRing) *BiometricService {
	t.Helper()
	return NewBiometricService(setupDB(t), ring, testLogger())
}

func TestBiometric_Available(t *testing.T) {
	ctx := context.Background()

	s := newBiometricService(t, &fakeRing{biometry: keyring.BiometryFaceID})
	require.True(t, s.Available(ctx))

	s = newBiometricService(t, &fakeRing{biometry: keyring.BiometryNone})
	require.False(t, s.Available(ctx))
}

func TestBiometric_EnableRequiresModality(t *testing.T) {
	s := newBiometricService(t, &fakeRing{biometry: keyring.BiometryNone})

	err := s.Enable(context.Background(), "a@x.com", "Aa1!aaaa")
	require.ErrorIs(t, err, common.ErrorBiometricUnavailable)
}

func TestBiometric_EnableStoresGatedCredentials(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint}
	s := newBiometricService(t, ring)
	ctx := context.Background()

	require.False(t, s.Enabled(ctx))
	require.NoError(t, s.Enable(ctx, "a@x.com", "Aa1!aaaa"))

	require.True(t, s.Enabled(ctx))
	require.NotNil(t, ring.creds)
	require.Equal(t, "a@x.com", ring.creds.Username)
	require.True(t, ring.gated, "credentials must be stored behind the biometric gate")
}

func TestBiometric_Disable(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint}
	s := newBiometricService(t, ring)
	ctx := context.Background()

	require.NoError(t, s.Enable(ctx, "a@x.com", "Aa1!aaaa"))
	require.NoError(t, s.Disable(ctx))

	require.False(t, s.Enabled(ctx))
	require.NotNil(t, ring.creds, "disable flips the flag only; the slot stays")
}

func TestBiometric_AuthenticateNotEnabled(t *testing.T) {
	s := newBiometricService(t, &fakeRing{biometry: keyring.BiometryFingerprint})

	_, err := s.Authenticate(context.Background())
	require.ErrorIs(t, err, common.ErrorBiometricUnavailable)
}

func TestBiometric_AuthenticateReturnsCredentials(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint}
	s := newBiometricService(t, ring)
	ctx := context.Background()

	require.NoError(t, s.Enable(ctx, "a@x.com", "Aa1!aaaa"))

	creds, err := s.Authenticate(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", creds.Username)
	require.Equal(t, "Aa1!aaaa", creds.Password)
}

func TestBiometric_AuthenticateGateRefusal(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint}
	s := newBiometricService(t, ring)
	ctx := context.Background()

	require.NoError(t, s.Enable(ctx, "a@x.com", "Aa1!aaaa"))
	ring.retrieveErr = fmt.Errorf("%w: user canceled", common.ErrorBiometricFailed)

	_, err := s.Authenticate(ctx)
	require.ErrorIs(t, err, common.ErrorBiometricFailed)
}

func TestBiometric_AuthenticateEmptySlot(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint}
	s := newBiometricService(t, ring)
	ctx := context.Background()

	require.NoError(t, s.Enable(ctx, "a@x.com", "Aa1!aaaa"))
	ring.creds = nil

	_, err := s.Authenticate(ctx)
	require.ErrorIs(t, err, common.ErrorBiometricFailed)
}

func TestBiometric_UnlockFlow(t *testing.T) {
	// end to end: enable unlock, then use retrieved credentials to log in
	db := setupDB(t)
	ring := &fakeRing{biometry: keyring.BiometryFaceID}
	auth := NewAuthService(db, ring, testLogger())
	bio := NewBiometricService(db, ring, testLogger())
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, "a@x.com", "Aa1!aaaa", testProfile("a@x.com")))
	require.NoError(t, bio.Enable(ctx, "a@x.com", "Aa1!aaaa"))

	creds, err := bio.Authenticate(ctx)
	require.NoError(t, err)

	user, err := auth.Login(ctx, creds.Username, creds.Password)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
}

func TestBiometric_EnableStoreFailure(t *testing.T) {
	ring := &fakeRing{biometry: keyring.BiometryFingerprint, storeErr: errors.New("keychain unavailable")}
	s := newBiometricService(t, ring)

	err := s.Enable(context.Background(), "a@x.com", "Aa1!aaaa")
	require.ErrorIs(t, err, common.ErrorStoreFailure)
	require.False(t, s.Enabled(context.Background()), "flag must not flip when the slot write fails")
}
