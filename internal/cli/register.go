package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/models"
	"github.com/dmitrijs2005/authvault/internal/validation"
)

// getSimpleText, getValidatedText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getValidatedText = GetValidatedText
var getPassword = GetPassword

// Register walks the user through the signup form field by field.
//
// If an unfinished draft exists the user may resume it, keeping the values
// already entered. Non-sensitive fields are autosaved to the draft after each
// answer so an interrupted signup can continue later. Passwords are collected
// last, never written to the draft, and wiped before returning.
//
// On success the account is created, the draft is cleared, and the user is
// signed in. If a biometric modality is available the user is offered to
// enable biometric unlock right away.
func (a *App) Register(ctx context.Context) error {
	form := &models.RegistrationForm{}

	draft, err := a.drafts.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "error loading registration draft", "error", err)
	}
	if draft != nil {
		resume, err := getSimpleText(a.reader, "Resume unfinished registration? (y/n)", a.out)
		if err != nil {
			return err
		}
		if resume == "y" || resume == "yes" {
			form.FirstName = draft.FirstName
			form.LastName = draft.LastName
			form.Email = draft.Email
			form.PhoneNumber = draft.PhoneNumber
			form.Country = draft.Country
			form.AgreeToTerms = draft.AgreeToTerms
		}
	}

	fields := []struct {
		prompt   string
		value    *string
		validate func(string) error
	}{
		{"First name", &form.FirstName, func(s string) error { return validation.Name("First name", s) }},
		{"Last name", &form.LastName, func(s string) error { return validation.Name("Last name", s) }},
		{"Email", &form.Email, validation.Email},
		{"Phone number", &form.PhoneNumber, validation.PhoneNumber},
		{"Country", &form.Country, validation.Country},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		s, err := getValidatedText(a.reader, f.prompt, a.out, f.validate)
		if err != nil {
			return err
		}
		*f.value = s
		if err := a.drafts.Save(ctx, form); err != nil {
			a.logger.Warn(ctx, "error saving registration draft", "error", err)
		}
	}

	if !form.AgreeToTerms {
		answer, err := getValidatedText(a.reader, "Do you agree to the terms and conditions? (y/n)", a.out, func(s string) error {
			if s != "y" && s != "yes" {
				return fmt.Errorf("you must agree to the terms and conditions")
			}
			return nil
		})
		if err != nil {
			return err
		}
		form.AgreeToTerms = answer == "y" || answer == "yes"
		if err := a.drafts.Save(ctx, form); err != nil {
			a.logger.Warn(ctx, "error saving registration draft", "error", err)
		}
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	strength := validation.PasswordStrength(string(password))
	fmt.Fprintf(a.out, "Password strength: %s\n", strength.Label)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form.Password = string(password)
	form.ConfirmPassword = string(confirm)
	defer func() {
		form.Password = ""
		form.ConfirmPassword = ""
	}()

	if problems := validation.ValidateRegistration(form); len(problems) > 0 {
		for _, msg := range problems {
			printlnFn(msg)
		}
		return fmt.Errorf("registration form is invalid")
	}

	profile := &models.User{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Country:     form.Country,
		CreatedAt:   time.Now().UTC(),
	}

	if err := a.auth.Register(ctx, form.Email, form.Password, profile); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.drafts.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "error clearing registration draft", "error", err)
	}

	user, err := a.auth.Login(ctx, form.Email, form.Password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.user = user
	printlnFn("Success! You are now signed in.")

	if a.biometric.Available(ctx) && !a.biometric.Enabled(ctx) {
		answer, err := getSimpleText(a.reader, "Enable biometric unlock? (y/n)", a.out)
		if err != nil {
			return nil
		}
		if answer == "y" || answer == "yes" {
			if err := a.biometric.Enable(ctx, form.Email, form.Password); err != nil {
				printlnFn(err.Error())
			} else {
				printlnFn("Biometric unlock enabled.")
			}
		}
	}

	return nil
}
