// Package models defines the data records persisted by AuthVault: the user
// profile, the per-user credential pair, the global auth state, and the
// registration draft.
package models

import "time"

// User is a registered account's public profile. It is created once at
// registration and never mutated afterwards. Email doubles as the unique
// account identifier.
type User struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
}

// CredentialPair is the secret counterpart of a User, stored under a separate
// key so the profile can be read without touching the secret.
type CredentialPair struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationForm carries everything the signup flow collects, including
// secrets. Only services.DraftService may receive it whole; anything persisted
// from it must go through the password-free RegistrationDraft.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Country         string
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}
