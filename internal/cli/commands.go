package cli

import (
	"context"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/keyring"
)

// Logout ends the current session. Stored accounts and credentials are kept,
// so the user can sign back in later.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.user = nil
	printlnFn("Signed out.")
	return nil
}

// Status prints the session state and whether biometric unlock is enabled.
func (a *App) Status(ctx context.Context) error {
	if a.user == nil {
		printlnFn("Not signed in.")
	} else {
		printlnFn("Signed in as", a.user.Email)
	}
	if t, err := a.biometric.Type(ctx); err == nil && t != keyring.BiometryNone {
		printlnFn("Biometry:", keyring.DisplayName(t))
	}
	if a.biometric.Enabled(ctx) {
		printlnFn("Biometric unlock: enabled")
	} else {
		printlnFn("Biometric unlock: disabled")
	}
	return nil
}

// BiometricOn enables biometric unlock for the signed-in user. The current
// password is requested so the keyring can seal a fresh credential pair.
func (a *App) BiometricOn(ctx context.Context) error {
	if a.user == nil {
		printlnFn("Sign in first.")
		return common.ErrorInvalidCredentials
	}

	password, err := getPassword("Confirm your password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.auth.VerifyCredentials(ctx, a.user.Email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if !ok {
		printlnFn("Password does not match.")
		return common.ErrorInvalidCredentials
	}

	if err := a.biometric.Enable(ctx, a.user.Email, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Biometric unlock enabled.")
	return nil
}

// BiometricOff disables biometric unlock. The sealed credential slot is kept
// so re-enabling does not require the password again on platforms that manage
// their own invalidation; see BiometricService.Disable.
func (a *App) BiometricOff(ctx context.Context) error {
	if err := a.biometric.Disable(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Biometric unlock disabled.")
	return nil
}
