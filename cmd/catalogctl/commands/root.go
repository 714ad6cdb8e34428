package commands

import (
	"context"
	"fmt"
	"os"

	"catalog-api/internal/config"
	"catalog-api/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Operator tooling for the catalog API",
	Long: `catalogctl manages the catalog database behind the catalog API.

Configuration is read from the same environment variables (and .env file)
as the API server. --db overrides the DB_* connection settings.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DB_* settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// environment loads configuration and a console logger for a command run.
// The logger stays at warn level unless --verbose is set.
func environment() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Logger.Format = "console"
	cfg.Logger.Level = "warn"
	if verbose {
		cfg.Logger.Level = "debug"
	}

	return cfg, config.NewLogger(cfg.Logger), nil
}

// openPool connects using --db when given, otherwise the configured database.
func openPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if dbURL != "" {
		return database.NewPoolFromURL(ctx, dbURL, cfg.Database, logger)
	}
	return database.NewPool(ctx, cfg.Database, logger)
}
