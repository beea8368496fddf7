package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/keyring"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/repositories/kv"
)

// BiometricService manages biometric unlock: availability queries, the
// enabled flag, and the gated credential retrieval used by the unlock flow.
// The credentials themselves live in the keyring slot; the key-value store
// only holds the boolean-as-string enabled flag.
type BiometricService struct {
	db     *sql.DB
	ring   keyring.Keyring
	logger logging.Logger
}

func NewBiometricService(db *sql.DB, ring keyring.Keyring, logger logging.Logger) *BiometricService {
	return &BiometricService{db: db, ring: ring, logger: logger}
}

// Available reports whether the device supports any biometric modality.
func (s *BiometricService) Available(ctx context.Context) bool {
	t, err := s.ring.SupportedBiometry(ctx)
	if err != nil {
		s.logger.Warn(ctx, "biometry availability check failed", "error", err)
		return false
	}
	return t != keyring.BiometryNone
}

// Type returns the supported biometric modality, BiometryNone if there is none.
func (s *BiometricService) Type(ctx context.Context) (keyring.BiometryType, error) {
	return s.ring.SupportedBiometry(ctx)
}

// Enabled reports whether biometric unlock has been turned on. Storage
// failures read as "disabled".
func (s *BiometricService) Enabled(ctx context.Context) bool {
	v, err := kv.NewSQLiteRepository(s.db).Get(ctx, biometricEnabledKey)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "failed to read biometric flag", "error", err)
		}
		return false
	}
	return string(v) == "true"
}

// Enable stores the credentials biometric-gated in the keyring and flips the
// enabled flag. Requires a supported modality.
func (s *BiometricService) Enable(ctx context.Context, email, password string) error {
	if !s.Available(ctx) {
		return common.ErrorBiometricUnavailable
	}

	creds := keyring.Credentials{Username: email, Password: password}
	if err := s.ring.Store(ctx, creds, keyring.StoreOptions{BiometricGate: true}); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	if err := s.setFlag(ctx, true); err != nil {
		return err
	}

	s.logger.Info(ctx, "biometric unlock enabled", "email", email)
	return nil
}

// Disable flips the enabled flag off. The keyring slot is left as is; it is
// only replaced on the next Enable.
func (s *BiometricService) Disable(ctx context.Context) error {
	return s.setFlag(ctx, false)
}

// Authenticate runs the biometric-gated retrieval and returns the stored
// credentials on success.
func (s *BiometricService) Authenticate(ctx context.Context) (*keyring.Credentials, error) {
	if !s.Enabled(ctx) {
		return nil, fmt.Errorf("%w: biometric unlock is not enabled", common.ErrorBiometricUnavailable)
	}

	creds, err := s.ring.Retrieve(ctx, &keyring.Prompt{
		Title:       "Authenticate",
		Subtitle:    "Use biometrics to login",
		Description: "Place your finger on the sensor or look at the camera",
		Cancel:      "Cancel",
	})
	if err != nil {
		if errors.Is(err, common.ErrorBiometricFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorBiometricFailed, err)
	}

	return creds, nil
}

func (s *BiometricService) setFlag(ctx context.Context, enabled bool) error {
	v := "false"
	if enabled {
		v = "true"
	}
	if err := kv.NewSQLiteRepository(s.db).Set(ctx, biometricEnabledKey, []byte(v)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	return nil
}
