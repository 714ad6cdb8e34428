package commands

import (
	"fmt"

	"catalog-api/cmd/catalogctl/output"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/seed"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedSources []string
	seedFromS3  bool
	seedDryRun  bool
)

// seedCmd replaces the catalogue with seed bundle contents
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace catalogue data from seed bundles",
	Long: `Load gzipped JSON seed bundles and replace every category, product, tag
and product/tag link in a single transaction. Without --source the catalogue
bundled with catalogctl is used.

With --s3 (or S3_ENABLED=true) each source is first fetched from
S3_BUCKET under S3_PREFIX, falling back to the local path.

Examples:
  catalogctl seed
  catalogctl seed --source data/seeds/catalog.json.gz
  catalogctl seed --source base.json.gz --source extra.json.gz --s3
  catalogctl seed --source catalog.json.gz --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringArrayVarP(&seedSources, "source", "s", nil, "Seed bundle path (repeatable)")
	seedCmd.Flags().BoolVar(&seedFromS3, "s3", false, "Fetch sources from S3 before the local file system")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Load and validate without writing")
}

func runSeed(cmd *cobra.Command) error {
	cfg, logger, err := environment()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	loader, err := newSeedLoader(cmd, cfg.Seed.S3Bucket, cfg.Seed.S3Region, cfg.Seed.S3Prefix, seedFromS3 || cfg.Seed.S3Enabled, logger)
	if err != nil {
		return err
	}

	if seedDryRun {
		snapshot, err := seed.NewSeeder(loader, nil, logger).Load(ctx, seedSources...)
		if err != nil {
			return err
		}
		if err := seed.Validate(snapshot); err != nil {
			return fmt.Errorf("invalid seed bundle: %w", err)
		}
		output.Info("Dry run, nothing written")
		printCounts(snapshot)
		return nil
	}

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	seeder := seed.NewSeeder(loader, repository.NewCatalogRepository(pool, logger), logger)

	snapshot, err := seeder.Run(ctx, seedSources...)
	if err != nil {
		return err
	}

	output.Success("Catalogue replaced")
	printCounts(snapshot)
	return nil
}

// newSeedLoader returns a local loader, wrapped with S3 when useS3 is set.
// An S3 client that cannot be configured degrades to local only.
func newSeedLoader(cmd *cobra.Command, bucket, region, prefix string, useS3 bool, logger zerolog.Logger) (seed.Loader, error) {
	fileLoader := seed.NewFileLoader(logger)
	if !useS3 {
		return fileLoader, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required with --s3")
	}

	s3Loader, err := seed.NewS3Loader(cmd.Context(), bucket, region, logger)
	if err != nil {
		output.Warning("S3 unavailable, using local files only: %v", err)
		return fileLoader, nil
	}
	return seed.NewFallbackLoader(s3Loader, fileLoader, prefix, logger), nil
}

func printCounts(snapshot *model.CatalogSnapshot) {
	output.KeyValue("categories", len(snapshot.Categories))
	output.KeyValue("products", len(snapshot.Products))
	output.KeyValue("tags", len(snapshot.Tags))
	output.KeyValue("links", len(snapshot.ProductTags))
}
