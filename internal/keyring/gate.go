package keyring

import "context"

// Gate abstracts the platform biometric prompt. Real implementations talk to
// the OS; the ones here cover devices without biometrics and tests.
type Gate interface {
	// Supported reports the available modality, BiometryNone if there is none.
	Supported(ctx context.Context) (BiometryType, error)

	// Authenticate runs the biometric check, showing prompt when the
	// platform supports it. A non-nil error means the check was refused
	// or failed.
	Authenticate(ctx context.Context, prompt *Prompt) error
}

// NoBiometrics is the Gate for devices without biometric hardware.
type NoBiometrics struct{}

func (NoBiometrics) Supported(ctx context.Context) (BiometryType, error) {
	return BiometryNone, nil
}

func (NoBiometrics) Authenticate(ctx context.Context, prompt *Prompt) error {
	return nil
}

// StaticGate reports a fixed modality and outcome. Used in tests and for
// local development.
type StaticGate struct {
	Type BiometryType
	Err  error
}

func (g StaticGate) Supported(ctx context.Context) (BiometryType, error) {
	return g.Type, nil
}

func (g StaticGate) Authenticate(ctx context.Context, prompt *Prompt) error {
	return g.Err
}
