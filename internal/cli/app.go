package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/authvault/internal/config"
	"github.com/dmitrijs2005/authvault/internal/keyring"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/models"
	"github.com/dmitrijs2005/authvault/internal/services"
	"github.com/dmitrijs2005/authvault/internal/storage"

	_ "modernc.org/sqlite"
)

// App wires the AuthVault services behind the interactive CLI.
type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	auth      *services.AuthService
	biometric *services.BiometricService
	drafts    *services.DraftService

	reader *bufio.Reader
	out    io.Writer

	// user of the active session, nil when signed out
	user *models.User
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	var logger logging.Logger = logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	// Stand-in gate until a platform biometric gate is wired in.
	ring := keyring.NewSQLiteKeyring(db, keyring.StaticGate{Type: keyring.BiometryFingerprint}, c.DeviceKeyPath)

	auth := services.NewAuthService(db, ring, logger)

	id, err := auth.InstallationID(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger = logger.With("installation_id", id)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		auth:      auth,
		biometric: services.NewBiometricService(db, ring, logger),
		drafts:    services.NewDraftService(db),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// Run restores a persisted session, if any, and starts the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	if user, ok := a.auth.IsAuthenticated(ctx); ok {
		a.user = user
		printlnFn("Welcome back,", user.FirstName)
	}

	printlnFn("Welcome to AuthVault CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Email + ")"
}
