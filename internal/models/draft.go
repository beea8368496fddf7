package models

import "time"

// RegistrationDraft is a resumable snapshot of an in-progress signup form.
// It deliberately has no password fields: a draft is written on every form
// change and secrets must never reach durable storage.
type RegistrationDraft struct {
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Country      string    `json:"country,omitempty"`
	AgreeToTerms bool      `json:"agree_to_terms,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}
