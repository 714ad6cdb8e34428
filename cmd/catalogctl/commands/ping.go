package commands

import (
	"fmt"
	"time"

	"catalog-api/cmd/catalogctl/output"

	"github.com/spf13/cobra"
)

// pingCmd checks database connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify database connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPing(cmd)
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	start := time.Now()

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var name, version string
	if err := pool.QueryRow(ctx, "SELECT current_database(), version()").Scan(&name, &version); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}

	output.Success("Connected to %s", name)
	output.KeyValue("version", version)
	output.KeyValue("latency", time.Since(start).Round(time.Millisecond))
	return nil
}
