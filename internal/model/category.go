package model

// Category groups products.
type Category struct {
	ID           int64  `json:"id" db:"id"`
	CategoryName string `json:"category_name" db:"category_name"`

	// Products is populated when the category is loaded with its associations.
	Products []Product `json:"products,omitzero"`
}

// CategoryInput is the request payload for creating a category.
type CategoryInput struct {
	CategoryName string `json:"category_name" validate:"required"`
}

// CategoryUpdate is the request payload for updating a category.
type CategoryUpdate struct {
	CategoryName *string `json:"category_name" validate:"omitempty,min=1"`
}

// HasFields reports whether the update touches any column.
func (u *CategoryUpdate) HasFields() bool {
	return u.CategoryName != nil
}
