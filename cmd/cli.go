package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"restaurant/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command of the restaurant service CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "restaurant",
		Short:         "QR table ordering service",
		Long:          "Multi-tenant restaurant ordering: customers order from a table QR code, waiters and the kitchen move orders through their lifecycle.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional dotenv file with configuration")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))

	return cmd
}

func newServeCommand(rootOpts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rootOpts, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")

	return cmd
}

func newMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err = postgres.Migrate(db); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "Schema migrated")
			return nil
		},
	}
}

func newSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create tenants, tables, menus and staff devices from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := LoadSeedFile(file)
			if err != nil {
				return err
			}

			config, logger, db, err := bootstrap(rootOpts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			root, err := NewCompositionRoot(config, db, logger)
			if err != nil {
				return err
			}
			defer root.Close()

			seeded, err := root.Seed(cmd.Context(), seed)
			for _, t := range seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", t.Name, t.ID)
				for _, table := range t.Tables {
					fmt.Fprintf(cmd.OutOrStdout(), "  table %d: %s\n", table.Number, table.MenuURL)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yml", "seed file")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, migrate bool) error {
	config, logger, db, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	if migrate {
		if err = postgres.Migrate(db); err != nil {
			return err
		}
	}

	root, err := NewCompositionRoot(config, db, logger)
	if err != nil {
		return err
	}
	defer root.Close()

	e, err := root.CreateRouter(ctx)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	// Open event streams only return once their subscription ends.
	root.Feed().Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func bootstrap(opts *RootOptions) (Config, *slog.Logger, *gorm.DB, error) {
	config, err := LoadConfig(opts.EnvFile)
	if err != nil {
		return Config{}, nil, nil, err
	}
	if err = config.Validate(); err != nil {
		return Config{}, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(os.Stderr)
	if err != nil {
		return Config{}, nil, nil, err
	}
	slog.SetDefault(logger)

	db, err := postgres.Open(config.DSN())
	if err != nil {
		return Config{}, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	return config, logger, db, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		logger.Warn("Failed to close database", "error", err)
	}
}
