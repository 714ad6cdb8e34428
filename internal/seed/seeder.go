package seed

import (
	"context"
	"fmt"
	"sync"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder replaces the catalogue with the contents of one or more bundles.
type Seeder struct {
	loader Loader
	repo   repository.CatalogRepository
	logger zerolog.Logger
}

// NewSeeder creates a seeder reading bundles through loader.
func NewSeeder(loader Loader, repo repository.CatalogRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		repo:   repo,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Load reads every path concurrently and merges the bundles in path order.
// With no paths it returns the default catalogue.
func (s *Seeder) Load(ctx context.Context, paths ...string) (*model.CatalogSnapshot, error) {
	if len(paths) == 0 {
		s.logger.Info().Msg("no seed files given, using default catalogue")
		return Default()
	}

	type loadResult struct {
		index    int
		snapshot *model.CatalogSnapshot
		err      error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			snapshot, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, snapshot: snapshot, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	merged := &model.CatalogSnapshot{}
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load seed file %s: %w", paths[i], result.err)
		}
		merged.Merge(result.snapshot)
	}

	return merged, nil
}

// Run loads the bundles at paths, validates the merged snapshot and writes it
// in a single transaction. It returns the snapshot that was applied.
func (s *Seeder) Run(ctx context.Context, paths ...string) (*model.CatalogSnapshot, error) {
	snapshot, err := s.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}

	if err := Validate(snapshot); err != nil {
		s.logger.Error().Err(err).Msg("seed bundle is inconsistent")
		return nil, fmt.Errorf("invalid seed bundle: %w", err)
	}

	if err := s.repo.Replace(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to apply seed: %w", err)
	}

	s.logger.Info().
		Int("files", len(paths)).
		Int("categories", len(snapshot.Categories)).
		Int("products", len(snapshot.Products)).
		Int("tags", len(snapshot.Tags)).
		Int("product_tags", len(snapshot.ProductTags)).
		Msg("catalogue seeded")

	return snapshot, nil
}
