package cli

import (
	"context"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/validation"
)

// Login prompts the user for credentials and tries to authenticate.
//
// On success the session user is stored on the App and a greeting is printed.
// Failed attempts print the service's error message, which includes the
// remaining-attempts or lockout details. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getValidatedText(a.reader, "Enter email", a.out, validation.Email)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.user = user
	printlnFn("Welcome,", user.FirstName)
	return nil
}

// Unlock signs the user in with biometrics. The keyring releases the stored
// credential pair after a successful biometric check and the pair is replayed
// through the regular login path, so lockout accounting applies the same way.
func (a *App) Unlock(ctx context.Context) error {
	creds, err := a.biometric.Authenticate(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	user, err := a.auth.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.user = user
	printlnFn("Welcome,", user.FirstName)
	return nil
}
