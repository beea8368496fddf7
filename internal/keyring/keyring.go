// Package keyring provides the secure single-slot credential store the app
// consumes in place of a platform keychain. The slot holds exactly one
// (username, password) pair; the password is sealed at rest and the read path
// can be gated behind a biometric check.
//
// Only the narrow Keyring interface is consumed by services; the SQLite
// implementation here is the on-device stand-in for the real keychain.
package keyring

import "context"

// BiometryType identifies the biometric modality a device supports.
type BiometryType string

const (
	BiometryNone        BiometryType = ""
	BiometryTouchID     BiometryType = "TouchID"
	BiometryFaceID      BiometryType = "FaceID"
	BiometryFingerprint BiometryType = "Fingerprint"
	BiometryFace        BiometryType = "Face"
	BiometryIris        BiometryType = "Iris"
)

// DisplayName returns the user-facing name of a biometric modality.
func DisplayName(t BiometryType) string {
	switch t {
	case BiometryTouchID:
		return "Touch ID"
	case BiometryFaceID:
		return "Face ID"
	case BiometryFingerprint:
		return "Fingerprint"
	case BiometryFace:
		return "Face Recognition"
	case BiometryIris:
		return "Iris Recognition"
	default:
		return "Biometric"
	}
}

// Credentials is the single (identifier, secret) pair kept in the slot.
type Credentials struct {
	Username string
	Password string
}

// Prompt carries the texts shown by a biometric-gated read.
type Prompt struct {
	Title       string
	Subtitle    string
	Description string
	Cancel      string
}

// StoreOptions controls how the slot is written.
type StoreOptions struct {
	// BiometricGate requires a successful biometric check before the
	// stored secret is released on Retrieve.
	BiometricGate bool
}

// Keyring is the single-slot secure credential store.
//
// Retrieve returns common.ErrorNotFound when the slot is empty and
// common.ErrorBiometricFailed when a gated read is refused.
type Keyring interface {
	Store(ctx context.Context, creds Credentials, opts StoreOptions) error
	Retrieve(ctx context.Context, prompt *Prompt) (*Credentials, error)
	Clear(ctx context.Context) error
	SupportedBiometry(ctx context.Context) (BiometryType, error)
}
