// Package cli provides the interactive AuthVault command-line client.
//
// It wires configuration, local storage, the keyring, and the application
// services into an interactive REPL covering the account lifecycle:
//
//   - register (with draft resume and autosave of non-sensitive fields)
//   - login / unlock (biometric)
//   - logout / status
//   - biometric on | off
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
