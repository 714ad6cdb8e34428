package service

import (
	"context"

	"catalog-api/internal/model"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// FindAll retrieves all categories with their products.
	FindAll(ctx context.Context) ([]model.Category, error)

	// FindByID retrieves a single category. Returns model.ErrCategoryNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Category, error)

	// Create validates and stores a new category.
	Create(ctx context.Context, input *model.CategoryInput) (*model.Category, error)

	// Update applies the supplied fields and returns the number of rows matched.
	Update(ctx context.Context, id int64, update *model.CategoryUpdate) (int64, error)

	// Delete removes a category and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// FindAll retrieves all products with their category and tags.
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindByID retrieves a single product. Returns model.ErrProductNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// Create validates and stores a new product together with its tag links.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// Update applies the supplied fields and tag set and returns the number of rows matched.
	Update(ctx context.Context, id int64, update *model.ProductUpdate) (int64, error)

	// Delete removes a product and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// TagService defines operations for tag management.
type TagService interface {
	// FindAll retrieves all tags with their products.
	FindAll(ctx context.Context) ([]model.Tag, error)

	// FindByID retrieves a single tag. Returns model.ErrTagNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Tag, error)

	// Create stores a new tag.
	Create(ctx context.Context, input *model.TagInput) (*model.Tag, error)

	// Update applies the supplied fields and returns the number of rows matched.
	Update(ctx context.Context, id int64, update *model.TagUpdate) (int64, error)

	// Delete removes a tag and returns the number of rows deleted.
	Delete(ctx context.Context, id int64) (int64, error)
}

// Validator checks request payloads.
type Validator interface {
	Validate(s any) error
}

// existsFunc reports whether a row exists.
type existsFunc func(ctx context.Context, id int64) (bool, error)

// resolveMatched turns a repository row count into the service result.
// A zero count from a statement that touched columns means the row is gone.
// A zero count from an empty update is ambiguous, so the row is looked up.
func resolveMatched(ctx context.Context, id, matched int64, touched bool, exists existsFunc, notFound error) (int64, error) {
	if matched > 0 {
		return matched, nil
	}

	if touched {
		return 0, notFound
	}

	ok, err := exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, notFound
	}

	return 0, nil
}
