package repository

import (
	"context"
	"errors"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tagRepository implements the TagRepository interface using PostgreSQL.
type tagRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(pool *pgxpool.Pool, logger zerolog.Logger) TagRepository {
	return &tagRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tag").Logger(),
	}
}

// FindAll retrieves all tags with their products.
func (r *tagRepository) FindAll(ctx context.Context) ([]model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tags")
		return nil, storageError("failed to query tags", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.TagName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan tag row")
			return nil, storageError("failed to scan tag", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating tag rows")
		return nil, storageError("error iterating tags", err)
	}

	products, err := loadProductsByTag(ctx, r.pool, ids(tags, func(t *model.Tag) int64 { return t.ID }))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(tags)).Msg("failed to load tag products")
		return nil, storageError("failed to load tag products", err)
	}

	for i := range tags {
		tags[i].Products = nonNil(products[tags[i].ID])
	}

	return tags, nil
}

// FindByID retrieves a tag with its products.
func (r *tagRepository) FindByID(ctx context.Context, id int64) (*model.Tag, error) {
	query := `
		SELECT id, tag_name
		FROM tags
		WHERE id = $1
	`

	var t model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.TagName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("tag_id", id).Msg("tag not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to query tag")
		return nil, storageError("failed to query tag", err)
	}

	products, err := loadProductsByTag(ctx, r.pool, []int64{t.ID})
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to load tag products")
		return nil, storageError("failed to load tag products", err)
	}
	t.Products = nonNil(products[t.ID])

	return &t, nil
}

// Exists reports whether a tag with the given ID exists.
func (r *tagRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM tags WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to check tag existence")
		return false, storageError("failed to check tag", err)
	}
	return exists, nil
}

// Create inserts a tag and returns the stored row.
func (r *tagRepository) Create(ctx context.Context, input *model.TagInput) (*model.Tag, error) {
	query := `
		INSERT INTO tags (tag_name)
		VALUES ($1)
		RETURNING id, tag_name
	`

	var t model.Tag
	if err := r.pool.QueryRow(ctx, query, input.TagName).Scan(&t.ID, &t.TagName); err != nil {
		r.logger.Error().Err(err).Msg("failed to create tag")
		return nil, storageError("failed to create tag", err)
	}

	r.logger.Debug().Int64("tag_id", t.ID).Msg("tag created successfully")

	return &t, nil
}

// Update applies the supplied fields and returns the number of rows matched.
func (r *tagRepository) Update(ctx context.Context, id int64, update *model.TagUpdate) (int64, error) {
	if !update.HasFields() {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx, "UPDATE tags SET tag_name = $1 WHERE id = $2", update.TagName.Value, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to update tag")
		return 0, storageError("failed to update tag", err)
	}

	return result.RowsAffected(), nil
}

// Delete removes a tag and returns the number of rows deleted.
// Its product_tag rows are removed by the foreign key cascade.
func (r *tagRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to delete tag")
		return 0, storageError("failed to delete tag", err)
	}

	return result.RowsAffected(), nil
}

// nonNil returns s, or an empty slice when s is nil, so eager-loaded
// associations encode as [] rather than being omitted.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
