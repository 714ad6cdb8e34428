package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalogue repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// serialTables lists the tables whose id sequences are realigned after a replace.
var serialTables = []string{"categories", "products", "tags", "product_tag"}

// Replace deletes all catalogue data and inserts the snapshot in one transaction.
// Rows keep the IDs given in the snapshot; sequences continue after the highest one.
func (r *catalogRepository) Replace(ctx context.Context, snapshot *model.CatalogSnapshot) error {
	err := withTx(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE product_tag, products, tags, categories RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate catalogue: %w", err)
		}

		batch := &pgx.Batch{}

		for _, c := range snapshot.Categories {
			batch.Queue("INSERT INTO categories (id, category_name) VALUES ($1, $2)", c.ID, c.CategoryName)
		}

		for _, p := range snapshot.Products {
			batch.Queue(
				"INSERT INTO products (id, product_name, price, stock, category_id) VALUES ($1, $2, $3, $4, $5)",
				p.ID, p.ProductName, p.Price, p.Stock, p.CategoryID,
			)
		}

		for _, t := range snapshot.Tags {
			batch.Queue("INSERT INTO tags (id, tag_name) VALUES ($1, $2)", t.ID, t.TagName)
		}

		for _, pt := range snapshot.ProductTags {
			batch.Queue("INSERT INTO product_tag (id, product_id, tag_id) VALUES ($1, $2, $3)", pt.ID, pt.ProductID, pt.TagID)
		}

		for _, table := range serialTables {
			batch.Queue(fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
				table,
			))
		}

		return sendBatch(ctx, tx, batch)
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to replace catalogue")
		return storageError("failed to replace catalogue", err)
	}

	r.logger.Info().
		Int("categories", len(snapshot.Categories)).
		Int("products", len(snapshot.Products)).
		Int("tags", len(snapshot.Tags)).
		Int("product_tags", len(snapshot.ProductTags)).
		Msg("catalogue replaced")

	return nil
}
