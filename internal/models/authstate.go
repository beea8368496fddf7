package models

import "time"

// AuthState is the single per-installation record that answers "who is signed
// in right now" and carries the failed-login accounting.
//
// Invariant: IsLockedOut implies LockoutUntil is set. The lockout is treated
// as expired as soon as the current time passes LockoutUntil, regardless of
// the stored flag; readers must compare against the clock rather than trust
// IsLockedOut alone.
type AuthState struct {
	IsAuthenticated     bool       `json:"is_authenticated"`
	User                *User      `json:"user,omitempty"`
	FailedLoginAttempts int        `json:"failed_login_attempts"`
	IsLockedOut         bool       `json:"is_locked_out"`
	LockoutUntil        *time.Time `json:"lockout_until,omitempty"`
}
