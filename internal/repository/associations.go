package repository

import (
	"context"
	"fmt"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
)

// Associations are loaded with one query per relation keyed by the parent IDs
// and stitched together in memory.

const productColumns = "p.id, p.product_name, p.price, p.stock, p.category_id"

// loadProductsByCategory returns the products of each category, keyed by category ID.
func loadProductsByCategory(ctx context.Context, db DBTX, categoryIDs []int64) (map[int64][]model.Product, error) {
	out := make(map[int64][]model.Product, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.category_id = ANY($1)
		ORDER BY p.id
	`

	rows, err := db.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query category products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan category product: %w", err)
		}
		out[*p.CategoryID] = append(out[*p.CategoryID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category products: %w", err)
	}

	return out, nil
}

// loadTagsByProduct returns the tags of each product through product_tag, keyed by product ID.
func loadTagsByProduct(ctx context.Context, db DBTX, productIDs []int64) (map[int64][]model.TagWithLink, error) {
	out := make(map[int64][]model.TagWithLink, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT pt.id, pt.product_id, pt.tag_id, t.id, t.tag_name
		FROM product_tag pt
		INNER JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1)
		ORDER BY t.id
	`

	rows, err := db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query product tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.TagWithLink
		err := rows.Scan(
			&t.ProductTag.ID, &t.ProductTag.ProductID, &t.ProductTag.TagID,
			&t.ID, &t.TagName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product tag: %w", err)
		}
		productID := *t.ProductTag.ProductID
		out[productID] = append(out[productID], t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product tags: %w", err)
	}

	return out, nil
}

// loadProductsByTag returns the products of each tag through product_tag, keyed by tag ID.
func loadProductsByTag(ctx context.Context, db DBTX, tagIDs []int64) (map[int64][]model.ProductWithLink, error) {
	out := make(map[int64][]model.ProductWithLink, len(tagIDs))
	if len(tagIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT pt.id, pt.product_id, pt.tag_id, ` + productColumns + `
		FROM product_tag pt
		INNER JOIN products p ON p.id = pt.product_id
		WHERE pt.tag_id = ANY($1)
		ORDER BY p.id
	`

	rows, err := db.Query(ctx, query, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.ProductWithLink
		err := rows.Scan(
			&p.ProductTag.ID, &p.ProductTag.ProductID, &p.ProductTag.TagID,
			&p.ID, &p.ProductName, &p.Price, &p.Stock, &p.CategoryID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag product: %w", err)
		}
		tagID := *p.ProductTag.TagID
		out[tagID] = append(out[tagID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag products: %w", err)
	}

	return out, nil
}

// linkTags inserts a product_tag row for every tag ID not already linked to the product.
func linkTags(ctx context.Context, db DBTX, productID int64, tagIDs []int64) error {
	tagIDs = uniqueIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_tag (product_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, tag_id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(query, productID, tagID)
	}

	if err := sendBatch(ctx, db, batch); err != nil {
		return fmt.Errorf("failed to link tags: %w", err)
	}

	return nil
}

// replaceTags makes tagIDs the exact tag set of the product.
func replaceTags(ctx context.Context, db DBTX, productID int64, tagIDs []int64) error {
	tagIDs = uniqueIDs(tagIDs)

	query := `
		DELETE FROM product_tag
		WHERE product_id = $1 AND (tag_id IS NULL OR tag_id <> ALL($2))
	`

	if _, err := db.Exec(ctx, query, productID, tagIDs); err != nil {
		return fmt.Errorf("failed to unlink tags: %w", err)
	}

	return linkTags(ctx, db, productID, tagIDs)
}

// ids returns the primary keys of rows.
func ids[T any](rows []T, id func(*T) int64) []int64 {
	out := make([]int64, len(rows))
	for i := range rows {
		out[i] = id(&rows[i])
	}
	return out
}
