package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backoffice/backend/config"
	"github.com/backoffice/backend/internal/infra/db"
	"github.com/backoffice/backend/internal/infra/dependency"
)

// connector opens the application graph; the returned func releases it.
type connector func(cfg *config.Config) (*dependency.Injector, func(), error)

// connect wires the application against the configured PostgreSQL database.
func connect(cfg *config.Config) (*dependency.Injector, func(), error) {
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), nil)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	return injector, func() {
		if err := injector.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}, nil
}

// app is shared by the subcommands once the root command has connected.
type app struct {
	injector *dependency.Injector
	release  func()
}

// close releases the connection, if one was opened.
func (a *app) close() {
	if a.release != nil {
		a.release()
		a.release = nil
	}
}

func newRootCmd(open connector) (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "quarterctl",
		Short: "Quarter reporting and closing for the back office",
		Long: `quarterctl reads the quarterly dashboard figures and drives the quarter
lifecycle (targets, closing, archiving) against the back-office database.

Configuration is read from the same environment variables as the API server
(DATABASE_URL, FINANCE_*, RESEND_*, AMQP_URL).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: parseLevel(level),
			})))

			injector, release, err := open(config.Load())
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			a.injector = injector
			a.release = release
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newStatsCmd(a),
		newKPIsCmd(a),
		newTargetsCmd(a),
		newStatusCmd(a),
		newShowCmd(a),
		newTargetCmd(a),
		newCloseCmd(a),
		newArchiveCmd(a),
	)
	return root, a
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
