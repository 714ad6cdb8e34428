package model

import "github.com/shopspring/decimal"

// DefaultStock is the stock level assigned to a product created without one.
const DefaultStock = 10

// Product represents a sellable item in the catalogue.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CategoryID  *int64          `json:"category_id" db:"category_id"`

	// Category is populated when the product is loaded with its associations.
	Category *Category `json:"category,omitzero"`

	// Tags is populated when the product is loaded with its associations.
	Tags []TagWithLink `json:"tags,omitzero"`
}

// ProductWithLink is a product embedded in a tag, carrying the join row that links them.
type ProductWithLink struct {
	Product
	ProductTag ProductTag `json:"product_tag"`
}

// ProductInput is the request payload for creating a product.
type ProductInput struct {
	ProductName string           `json:"product_name" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      []int64          `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

// ProductUpdate is the request payload for updating a product.
// Nil fields are left untouched. CategoryID distinguishes an absent field from
// an explicit null, which detaches the product from its category.
type ProductUpdate struct {
	ProductName *string          `json:"product_name" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  Nullable[int64]  `json:"category_id"`
	TagIDs      *[]int64         `json:"tagIds"`
}

// HasFields reports whether the update touches any column of the products table.
func (u *ProductUpdate) HasFields() bool {
	return u.ProductName != nil || u.Price != nil || u.Stock != nil || u.CategoryID.Set
}
