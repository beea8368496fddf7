// Package common defines shared sentinel errors and small utilities used
// across AuthVault components. Callers should use errors.Is to match the
// sentinel values; services wrap them with fmt.Errorf("%w: ...") to attach
// user-facing detail such as remaining attempts or minutes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage failures (read/write/remove against the key-value store
	// or the keyring failed at the I/O level).
	ErrorStoreFailure = errors.New("storage failure")

	// Registration errors.
	ErrorDuplicateUser = errors.New("user already exists")

	// Login errors.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorAccountLocked      = errors.New("account locked")

	// Integrity fault: a credential pair exists but the profile is gone.
	ErrorUserDataMissing = errors.New("user data not found")

	// Biometric collaborator errors.
	ErrorBiometricUnavailable = errors.New("biometric authentication not available")
	ErrorBiometricFailed      = errors.New("biometric authentication failed")
)
