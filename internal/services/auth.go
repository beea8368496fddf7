package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/dbx"
	"github.com/dmitrijs2005/authvault/internal/keyring"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/models"
	"github.com/dmitrijs2005/authvault/internal/repositories/kv"
	"github.com/google/uuid"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// AuthService enforces the registration/login/lockout state machine on top of
// the key-value store and the keyring.
//
// The auth state is a single per-installation record; every login/logout is a
// read-modify-write over it, so the service serializes its operations with a
// mutex and persists multi-step updates inside a transaction. The failed-
// attempt counter is shared by all accounts on the installation.
type AuthService struct {
	db     *sql.DB
	ring   keyring.Keyring
	logger logging.Logger

	mu sync.Mutex

	// now is a seam for lockout-expiry tests.
	now func() time.Time
}

func NewAuthService(db *sql.DB, ring keyring.Keyring, logger logging.Logger) *AuthService {
	return &AuthService{db: db, ring: ring, logger: logger, now: time.Now}
}

func (s *AuthService) repo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

// InstallationID returns the stable identifier of this installation,
// generating and persisting one on first use.
func (s *AuthService) InstallationID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repo(s.db)

	v, err := repo.Get(ctx, installationIDKey)
	if err == nil {
		return string(v), nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, installationIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	return id, nil
}

// Register creates a new account: profile, credential pair, and an entry in
// the registered-users index, in that order. Each step is independently
// fallible and the sequence stops at the first failure; a profile written
// before a failed credential write is left behind on purpose (no rollback).
func (s *AuthService) Register(ctx context.Context, email, password string, profile *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repo(s.db)

	registered, err := s.registeredUsers(ctx, repo)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	if slices.Contains(registered, email) {
		return common.ErrorDuplicateUser
	}

	profile.Email = email
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now()
	}

	if err := s.setJSON(ctx, repo, userKey(email), profile); err != nil {
		return fmt.Errorf("%w: failed to store user data: %v", common.ErrorStoreFailure, err)
	}

	pair := models.CredentialPair{Email: email, Password: password}
	if err := s.setJSON(ctx, repo, credentialsKey(email), pair); err != nil {
		return fmt.Errorf("%w: failed to store credentials: %v", common.ErrorStoreFailure, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repo(tx)
		registered, err := s.registeredUsers(ctx, txRepo)
		if err != nil {
			return err
		}
		if !slices.Contains(registered, email) {
			registered = append(registered, email)
		}
		return s.setJSON(ctx, txRepo, registeredUsersKey, registered)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to update registered users: %v", common.ErrorStoreFailure, err)
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return nil
}

// Login verifies the supplied credentials and updates the auth state.
//
// Order of evaluation: active lockout first (strict now < lockoutUntil; at
// exact expiry verification proceeds), then credential verification, then
// failed-attempt accounting on mismatch or state reset on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repo(s.db)

	state, err := s.authState(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	now := s.now()
	if state != nil && state.IsLockedOut && state.LockoutUntil != nil && now.Before(*state.LockoutUntil) {
		remaining := ceilMinutes(state.LockoutUntil.Sub(now))
		return nil, fmt.Errorf("%w: try again in %d minute(s)", common.ErrorAccountLocked, remaining)
	}

	valid, err := s.verifyCredentials(ctx, repo, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	if !valid {
		attempts := 1
		if state != nil {
			attempts = state.FailedLoginAttempts + 1
		}
		locked := attempts >= maxLoginAttempts

		next := &models.AuthState{
			IsAuthenticated:     false,
			User:                nil,
			FailedLoginAttempts: attempts,
			IsLockedOut:         locked,
		}
		if locked {
			until := now.Add(lockoutDuration)
			next.LockoutUntil = &until
		}

		if err := s.storeAuthState(ctx, next); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
		}

		if locked {
			s.logger.Warn(ctx, "lockout threshold reached", "email", email, "attempts", attempts)
			return nil, fmt.Errorf("%w: too many failed attempts, locked for %d minutes",
				common.ErrorAccountLocked, int(lockoutDuration.Minutes()))
		}
		return nil, fmt.Errorf("%w: %d attempt(s) remaining",
			common.ErrorInvalidCredentials, maxLoginAttempts-attempts)
	}

	user, err := s.user(ctx, repo, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	if user == nil {
		// credentials exist but the profile record is gone
		return nil, common.ErrorUserDataMissing
	}

	next := &models.AuthState{
		IsAuthenticated:     true,
		User:                user,
		FailedLoginAttempts: 0,
		IsLockedOut:         false,
	}
	if err := s.storeAuthState(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}

	s.logger.Info(ctx, "login successful", "email", email)
	return user, nil
}

// Logout removes the auth state record. The credential pair and the profile
// are intentionally retained so the user can log in again without
// re-registering.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo(s.db).Delete(ctx, authStateKey); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreFailure, err)
	}
	return nil
}

// IsAuthenticated reports whether a user is currently signed in. It is a pure
// read of the stored auth state: true only when the flag is set and a user is
// present. Storage failures are treated as "not authenticated".
func (s *AuthService) IsAuthenticated(ctx context.Context) (*models.User, bool) {
	state, err := s.authState(ctx, s.repo(s.db))
	if err != nil {
		s.logger.Error(ctx, "failed to read auth state", "error", err)
		return nil, false
	}
	if state != nil && state.IsAuthenticated && state.User != nil {
		return state.User, true
	}
	return nil, false
}

// VerifyCredentials checks the supplied pair without touching the auth state.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	return s.verifyCredentials(ctx, s.repo(s.db), email, password)
}

// verifyCredentials looks up the per-email credential pair; when none exists
// it falls back to the legacy single-slot keyring record, which matches only
// if its username equals the supplied email. The fallback is a migration shim
// for pre-existing single-account installations, not core logic.
func (s *AuthService) verifyCredentials(ctx context.Context, repo kv.Repository, email, password string) (bool, error) {
	var pair models.CredentialPair
	found, err := s.getJSON(ctx, repo, credentialsKey(email), &pair)
	if err != nil {
		return false, err
	}

	if !found {
		legacy, err := s.ring.Retrieve(ctx, nil)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				s.logger.Warn(ctx, "legacy credential lookup failed", "error", err)
			}
			return false, nil
		}
		if legacy.Username != email {
			return false, nil
		}
		return equalSecret(legacy.Password, password), nil
	}

	return pair.Email == email && equalSecret(pair.Password, password), nil
}

func equalSecret(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// ceilMinutes converts a remaining duration to whole minutes, rounding up.
func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

// --- persisted record helpers ---

// authState loads the current auth state; an absent record yields (nil, nil).
func (s *AuthService) authState(ctx context.Context, repo kv.Repository) (*models.AuthState, error) {
	var state models.AuthState
	found, err := s.getJSON(ctx, repo, authStateKey, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

// storeAuthState persists the state inside a transaction so the
// read-modify-write of the attempt counter is not torn.
func (s *AuthService) storeAuthState(ctx context.Context, state *models.AuthState) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.setJSON(ctx, s.repo(tx), authStateKey, state)
	})
}

func (s *AuthService) registeredUsers(ctx context.Context, repo kv.Repository) ([]string, error) {
	var users []string
	if _, err := s.getJSON(ctx, repo, registeredUsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// user loads the profile for email; an absent record yields (nil, nil).
func (s *AuthService) user(ctx context.Context, repo kv.Repository, email string) (*models.User, error) {
	var u models.User
	found, err := s.getJSON(ctx, repo, userKey(email), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) getJSON(ctx context.Context, repo kv.Repository, key string, v any) (bool, error) {
	data, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *AuthService) setJSON(ctx context.Context, repo kv.Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, data)
}
