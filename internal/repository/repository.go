package repository

import (
	"context"

	"catalog-api/internal/model"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// FindAll retrieves all categories with their products.
	FindAll(ctx context.Context) ([]model.Category, error)

	// FindByID retrieves a category with its products. Returns nil if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Category, error)

	// Exists reports whether a category with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a category and returns the stored row.
	Create(ctx context.Context, input *model.CategoryInput) (*model.Category, error)

	// Update applies the supplied fields and returns the number of rows matched.
	Update(ctx context.Context, id int64, update *model.CategoryUpdate) (int64, error)

	// Delete removes a category and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// FindAll retrieves all products with their category and tags.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindByID retrieves a product with its category and tags. Returns nil if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// Exists reports whether a product with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a product and links it to input.TagIDs in one transaction.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// Update applies the supplied fields and, when update.TagIDs is set, replaces
	// the product's tags, all in one transaction. Returns the number of product rows matched.
	Update(ctx context.Context, id int64, update *model.ProductUpdate) (int64, error)

	// Delete removes a product and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// TagRepository defines the interface for tag data access operations.
type TagRepository interface {
	// FindAll retrieves all tags with their products.
	FindAll(ctx context.Context) ([]model.Tag, error)

	// FindByID retrieves a tag with its products. Returns nil if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Tag, error)

	// Exists reports whether a tag with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a tag and returns the stored row.
	Create(ctx context.Context, input *model.TagInput) (*model.Tag, error)

	// Update applies the supplied fields and returns the number of rows matched.
	Update(ctx context.Context, id int64, update *model.TagUpdate) (int64, error)

	// Delete removes a tag and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// CatalogRepository defines bulk operations over the whole catalogue.
type CatalogRepository interface {
	// Replace deletes all catalogue data and inserts the snapshot in one transaction.
	Replace(ctx context.Context, snapshot *model.CatalogSnapshot) error
}
