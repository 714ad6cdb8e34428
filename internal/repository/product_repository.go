package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productWithCategoryQuery = `
	SELECT ` + productColumns + `, c.id, c.category_name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// scanProductWithCategory scans a row produced by productWithCategoryQuery.
func scanProductWithCategory(row pgx.Row) (model.Product, error) {
	var (
		p            model.Product
		categoryID   *int64
		categoryName *string
	)

	err := row.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID, &categoryID, &categoryName)
	if err != nil {
		return p, err
	}

	if categoryID != nil {
		p.Category = &model.Category{ID: *categoryID, CategoryName: *categoryName}
	}

	return p, nil
}

// FindAll retrieves all products with their category and tags.
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, productWithCategoryQuery+" ORDER BY p.id")
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, storageError("failed to query products", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, storageError("failed to scan product", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, storageError("error iterating products", err)
	}

	tags, err := loadTagsByProduct(ctx, r.pool, ids(products, func(p *model.Product) int64 { return p.ID }))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(products)).Msg("failed to load product tags")
		return nil, storageError("failed to load product tags", err)
	}

	for i := range products {
		products[i].Tags = nonNil(tags[products[i].ID])
	}

	return products, nil
}

// FindByID retrieves a product with its category and tags.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProductWithCategory(r.pool.QueryRow(ctx, productWithCategoryQuery+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, storageError("failed to query product", err)
	}

	tags, err := loadTagsByProduct(ctx, r.pool, []int64{p.ID})
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product tags")
		return nil, storageError("failed to load product tags", err)
	}
	p.Tags = nonNil(tags[p.ID])

	return &p, nil
}

// Exists reports whether a product with the given ID exists.
func (r *productRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to check product existence")
		return false, storageError("failed to check product", err)
	}
	return exists, nil
}

// Create inserts a product and links it to input.TagIDs in one transaction.
func (r *productRepository) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	stock := model.DefaultStock
	if input.Stock != nil {
		stock = *input.Stock
	}

	query := `
		INSERT INTO products (product_name, price, stock, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_name, price, stock, category_id
	`

	var p model.Product
	err := withTx(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, input.ProductName, input.Price, stock, input.CategoryID).
			Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}

		return linkTags(ctx, tx, p.ID, input.TagIDs)
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_name", input.ProductName).
			Int("tag_count", len(input.TagIDs)).
			Msg("failed to create product")
		return nil, storageError("failed to create product", err)
	}

	r.logger.Debug().
		Int64("product_id", p.ID).
		Int("tag_count", len(input.TagIDs)).
		Msg("product created successfully")

	return &p, nil
}

// Update applies the supplied fields and replaces the product's tags when
// update.TagIDs is set. Returns the number of product rows matched; a tag-only
// change counts the product as matched.
func (r *productRepository) Update(ctx context.Context, id int64, update *model.ProductUpdate) (int64, error) {
	if !update.HasFields() && update.TagIDs == nil {
		return 0, nil
	}

	var matched int64
	err := withTx(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		if update.HasFields() {
			query, args := buildProductUpdate(id, update)
			result, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("update product: %w", err)
			}
			matched = result.RowsAffected()
		} else {
			// Lock the row so the tag rewrite cannot race a delete.
			result, err := tx.Exec(ctx, "SELECT 1 FROM products WHERE id = $1 FOR UPDATE", id)
			if err != nil {
				return fmt.Errorf("lock product: %w", err)
			}
			matched = result.RowsAffected()
		}

		if matched == 0 || update.TagIDs == nil {
			return nil
		}

		return replaceTags(ctx, tx, id, *update.TagIDs)
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return 0, storageError("failed to update product", err)
	}

	return matched, nil
}

// buildProductUpdate renders an UPDATE statement touching only the supplied columns.
func buildProductUpdate(id int64, update *model.ProductUpdate) (string, []any) {
	var (
		sets []string
		args []any
	)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ProductName != nil {
		add("product_name", *update.ProductName)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Stock != nil {
		add("stock", *update.Stock)
	}
	if update.CategoryID.Set {
		add("category_id", update.CategoryID.Value)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	return query, args
}

// Delete removes a product and returns the number of rows deleted.
// Its product_tag rows are removed by the foreign key cascade.
func (r *productRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return 0, storageError("failed to delete product", err)
	}

	return result.RowsAffected(), nil
}
