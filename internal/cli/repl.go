package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Unlock(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	BiometricOn(ctx context.Context) error
	BiometricOff(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the AuthVault CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on reader EOF or when the user types
// "exit" or "quit".
//
// The reader must be the same one the command handlers prompt through, so
// commands and form answers can interleave on a single piped input.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signed out:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate with email and password
//	  - unlock         — authenticate with biometrics
//	  - status         — show session state
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - status         — show session state
//	  - biometric on   — enable biometric unlock
//	  - biometric off  — disable biometric unlock
//	  - logout         — end the session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("av> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: status, biometric on|off, logout, exit")
			} else {
				printlnFn("Available commands: register, login, unlock, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "unlock":
			_ = a.Unlock(ctx)

		case "status":
			_ = a.Status(ctx)

		case "biometric":
			if len(parts) < 2 {
				printlnFn("Usage: biometric on|off")
				continue
			}
			switch parts[1] {
			case "on":
				_ = a.BiometricOn(ctx)
			case "off":
				_ = a.BiometricOff(ctx)
			default:
				printlnFn("Usage: biometric on|off")
			}

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
