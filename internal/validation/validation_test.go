package validation

import (
	"testing"

	"github.com/dmitrijs2005/authvault/internal/models"
	"github.com/stretchr/testify/require"
)

func validForm() *models.RegistrationForm {
	return &models.RegistrationForm{
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@example.com",
		PhoneNumber:     "+1234567890",
		Country:         "US",
		Password:        "SecureP@ss123",
		ConfirmPassword: "SecureP@ss123",
		AgreeToTerms:    true,
	}
}

func TestEmail(t *testing.T) {
	for _, email := range []string{
		"test@example.com",
		"user.name@domain.co.uk",
		"firstname+lastname@example.com",
	} {
		require.NoErrorf(t, Email(email), "expected %q to be valid", email)
	}

	for _, email := range []string{"invalid", "test@", "@example.com", "test@.com"} {
		require.Errorf(t, Email(email), "expected %q to be rejected", email)
	}

	require.EqualError(t, Email(""), "email is required")
}

func TestPhoneNumber(t *testing.T) {
	for _, phone := range []string{"+1234567890", "1234567890"} {
		require.NoErrorf(t, PhoneNumber(phone), "expected %q to be valid", phone)
	}

	require.Error(t, PhoneNumber("123"), "too short")
	require.Error(t, PhoneNumber("12345678901234567890"), "too long")
	require.Error(t, PhoneNumber("abcdefghijk"), "not a number")
	require.EqualError(t, PhoneNumber(""), "phone number is required")
}

func TestPassword(t *testing.T) {
	for _, pw := range []string{"Test@1234", "SecureP@ss123", "MyP@ssw0rd!"} {
		require.NoErrorf(t, Password(pw), "expected %q to be valid", pw)
	}

	tests := []struct {
		name string
		pw   string
	}{
		{"no uppercase", "test@1234"},
		{"no lowercase", "TEST@1234"},
		{"no digit", "Test@Test"},
		{"no special character", "Test1234"},
		{"too short", "Ts@1"},
	}
	for _, tc := range tests {
		require.Errorf(t, Password(tc.pw), "expected %q (%s) to be rejected", tc.pw, tc.name)
	}

	require.EqualError(t, Password(""), "password is required")
}

func TestName(t *testing.T) {
	require.NoError(t, Name("first name", "John"))
	require.NoError(t, Name("first name", "Mary Jane"))

	require.EqualError(t, Name("first name", ""), "first name is required")
	require.EqualError(t, Name("first name", "J"), "first name must be at least 2 characters")
	require.EqualError(t, Name("last name", "O'Brien"), "last name can only contain letters")
}

func TestValidateRegistration_Valid(t *testing.T) {
	require.Empty(t, ValidateRegistration(validForm()))
}

func TestValidateRegistration_PasswordMismatch(t *testing.T) {
	form := validForm()
	form.ConfirmPassword = "DifferentP@ss123"

	problems := ValidateRegistration(form)
	require.Equal(t, "passwords must match", problems["confirmPassword"])
}

func TestValidateRegistration_TermsNotAgreed(t *testing.T) {
	form := validForm()
	form.AgreeToTerms = false

	problems := ValidateRegistration(form)
	require.Contains(t, problems, "agreeToTerms")
}

func TestValidateRegistration_CollectsAllProblems(t *testing.T) {
	form := &models.RegistrationForm{}
	problems := ValidateRegistration(form)

	for _, field := range []string{"firstName", "lastName", "email", "phoneNumber", "country", "password", "agreeToTerms"} {
		require.Contains(t, problems, field)
	}
}

func TestValidateLogin(t *testing.T) {
	require.Empty(t, ValidateLogin("a@x.com", "secret1"))

	problems := ValidateLogin("", "")
	require.Equal(t, "email or username is required", problems["identifier"])
	require.Equal(t, "password is required", problems["password"])

	problems = ValidateLogin("ab", "12345")
	require.Equal(t, "must be at least 3 characters", problems["identifier"])
	require.Equal(t, "password must be at least 6 characters", problems["password"])
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw    string
		score int
		label string
	}{
		{"", 0, "Weak"},
		{"abc", 1, "Weak"},
		{"abcdefgh", 2, "Weak"},
		{"Abcdefgh", 3, "Medium"},
		{"Abcdefg1", 4, "Medium"},
		{"Abcdef1!", 5, "Strong"},
		{"Abcdefghij1!", 6, "Strong"},
	}
	for _, tc := range tests {
		got := PasswordStrength(tc.pw)
		require.Equalf(t, tc.score, got.Score, "score for %q", tc.pw)
		require.Equalf(t, tc.label, got.Label, "label for %q", tc.pw)
	}
}
