// Package services contains the application services of AuthVault: the
// authentication state machine (registration, login with lockout accounting,
// logout, status), the biometric unlock service, and the registration-draft
// service. All of them persist through the key-value repository and the
// keyring slot; none of them runs background work.
package services
