package repository

import (
	"context"
	"errors"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// FindAll retrieves all categories with their products.
func (r *categoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, storageError("failed to query categories", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.CategoryName); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, storageError("failed to scan category", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, storageError("error iterating categories", err)
	}

	products, err := loadProductsByCategory(ctx, r.pool, ids(categories, func(c *model.Category) int64 { return c.ID }))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(categories)).Msg("failed to load category products")
		return nil, storageError("failed to load category products", err)
	}

	for i := range categories {
		categories[i].Products = nonNil(products[categories[i].ID])
	}

	return categories, nil
}

// FindByID retrieves a category with its products.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, category_name
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, storageError("failed to query category", err)
	}

	products, err := loadProductsByCategory(ctx, r.pool, []int64{c.ID})
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to load category products")
		return nil, storageError("failed to load category products", err)
	}
	c.Products = nonNil(products[c.ID])

	return &c, nil
}

// Exists reports whether a category with the given ID exists.
func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to check category existence")
		return false, storageError("failed to check category", err)
	}
	return exists, nil
}

// Create inserts a category and returns the stored row.
func (r *categoryRepository) Create(ctx context.Context, input *model.CategoryInput) (*model.Category, error) {
	query := `
		INSERT INTO categories (category_name)
		VALUES ($1)
		RETURNING id, category_name
	`

	var c model.Category
	if err := r.pool.QueryRow(ctx, query, input.CategoryName).Scan(&c.ID, &c.CategoryName); err != nil {
		r.logger.Error().Err(err).Msg("failed to create category")
		return nil, storageError("failed to create category", err)
	}

	r.logger.Debug().Int64("category_id", c.ID).Msg("category created successfully")

	return &c, nil
}

// Update applies the supplied fields and returns the number of rows matched.
func (r *categoryRepository) Update(ctx context.Context, id int64, update *model.CategoryUpdate) (int64, error) {
	if !update.HasFields() {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx,
		"UPDATE categories SET category_name = $1 WHERE id = $2",
		*update.CategoryName, id,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return 0, storageError("failed to update category", err)
	}

	return result.RowsAffected(), nil
}

// Delete removes a category and returns the number of rows deleted.
// Products in the category keep existing with a null category_id.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return 0, storageError("failed to delete category", err)
	}

	return result.RowsAffected(), nil
}
