package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"catalog-api/cmd/catalogctl/output"
	"catalog-api/internal/seed"

	"github.com/spf13/cobra"
)

var genSeedOut string

// genSeedCmd writes the embedded default catalogue as a seed bundle
var genSeedCmd = &cobra.Command{
	Use:   "gen-seed",
	Short: "Write the default catalogue as a gzipped seed bundle",
	Long: `Write the catalogue bundled with catalogctl as a gzipped JSON seed file.
The output defaults to SEED_PATH.

Examples:
  catalogctl gen-seed
  catalogctl gen-seed --out data/seeds/catalog.json.gz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenSeed()
	},
}

func init() {
	rootCmd.AddCommand(genSeedCmd)
	genSeedCmd.Flags().StringVarP(&genSeedOut, "out", "o", "", "Output file (default SEED_PATH)")
}

func runGenSeed() error {
	path := genSeedOut
	if path == "" {
		cfg, _, err := environment()
		if err != nil {
			return err
		}
		path = cfg.Seed.LocalPath
	}

	snapshot, err := seed.Default()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := seed.Encode(file, snapshot); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	output.Success("Wrote %s", path)
	printCounts(snapshot)
	return nil
}
