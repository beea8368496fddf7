// Package validation implements the signup and login form rules: field
// formats, password complexity, cross-field checks, and the password
// strength meter.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/authvault/internal/models"
)

const specialChars = "@$!%*?&"

var (
	emailRegexp = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
	nameRegexp  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Email checks the account identifier format.
func Email(s string) error {
	if s == "" {
		return errors.New("email is required")
	}
	if !emailRegexp.MatchString(s) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

// PhoneNumber checks an international phone number.
func PhoneNumber(s string) error {
	if s == "" {
		return errors.New("phone number is required")
	}
	if len(s) < 10 {
		return errors.New("phone number must be at least 10 digits")
	}
	if len(s) > 15 {
		return errors.New("phone number must not exceed 15 digits")
	}
	if !phoneRegexp.MatchString(s) {
		return errors.New("please enter a valid phone number")
	}
	return nil
}

// Password enforces the complexity rules: at least 8 characters with one
// lowercase letter, one uppercase letter, one digit, and one special
// character.
func Password(s string) error {
	if s == "" {
		return errors.New("password is required")
	}
	if len(s) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !strings.ContainsFunc(s, isLower) ||
		!strings.ContainsFunc(s, isUpper) ||
		!strings.ContainsFunc(s, isDigit) ||
		!strings.ContainsAny(s, specialChars) {
		return errors.New("password must contain at least one uppercase letter, one lowercase letter, one number, and one special character")
	}
	return nil
}

// Name checks a first or last name: 2-50 characters, letters and spaces only.
// The field name is used in the message.
func Name(field, s string) error {
	if s == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(s) < 2 {
		return fmt.Errorf("%s must be at least 2 characters", field)
	}
	if len(s) > 50 {
		return fmt.Errorf("%s must not exceed 50 characters", field)
	}
	if !nameRegexp.MatchString(s) {
		return fmt.Errorf("%s can only contain letters", field)
	}
	return nil
}

// Country checks the country selection.
func Country(s string) error {
	if s == "" {
		return errors.New("country is required")
	}
	if len(s) < 2 {
		return errors.New("please select a valid country")
	}
	return nil
}

// ValidateRegistration runs every rule over the form and returns the failures
// keyed by field name. An empty map means the form is valid.
func ValidateRegistration(form *models.RegistrationForm) map[string]string {
	problems := make(map[string]string)

	collect := func(field string, err error) {
		if err != nil {
			problems[field] = err.Error()
		}
	}

	collect("firstName", Name("first name", form.FirstName))
	collect("lastName", Name("last name", form.LastName))
	collect("email", Email(form.Email))
	collect("phoneNumber", PhoneNumber(form.PhoneNumber))
	collect("country", Country(form.Country))
	collect("password", Password(form.Password))

	if _, ok := problems["password"]; !ok {
		if form.ConfirmPassword == "" {
			problems["confirmPassword"] = "please confirm your password"
		} else if form.ConfirmPassword != form.Password {
			problems["confirmPassword"] = "passwords must match"
		}
	}

	if !form.AgreeToTerms {
		problems["agreeToTerms"] = "you must agree to the terms and conditions"
	}

	return problems
}

// ValidateLogin checks the login form: an identifier of at least 3 characters
// and a password of at least 6.
func ValidateLogin(identifier, password string) map[string]string {
	problems := make(map[string]string)

	if identifier == "" {
		problems["identifier"] = "email or username is required"
	} else if len(identifier) < 3 {
		problems["identifier"] = "must be at least 3 characters"
	}

	if password == "" {
		problems["password"] = "password is required"
	} else if len(password) < 6 {
		problems["password"] = "password must be at least 6 characters"
	}

	return problems
}

// Strength is the password strength meter result.
type Strength struct {
	Score int
	Label string
}

// PasswordStrength scores a password 0-6: one point each for length >= 8,
// length >= 12, a lowercase letter, an uppercase letter, a digit, and a
// special character.
func PasswordStrength(s string) Strength {
	score := 0

	if len(s) >= 8 {
		score++
	}
	if len(s) >= 12 {
		score++
	}
	if strings.ContainsFunc(s, isLower) {
		score++
	}
	if strings.ContainsFunc(s, isUpper) {
		score++
	}
	if strings.ContainsFunc(s, isDigit) {
		score++
	}
	if strings.ContainsAny(s, specialChars) {
		score++
	}

	label := "Strong"
	switch {
	case score <= 2:
		label = "Weak"
	case score <= 4:
		label = "Medium"
	}

	return Strength{Score: score, Label: label}
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
