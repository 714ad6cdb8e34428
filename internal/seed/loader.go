package seed

import (
	"context"
	"fmt"
	"os"

	"catalog-api/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped bundles from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped seed bundle from filePath.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*model.CatalogSnapshot, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	snapshot, err := Decode(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read seed file")
		return nil, fmt.Errorf("failed to read seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categories", len(snapshot.Categories)).
		Int("products", len(snapshot.Products)).
		Int("tags", len(snapshot.Tags)).
		Msg("seed file loaded successfully")

	return snapshot, nil
}
