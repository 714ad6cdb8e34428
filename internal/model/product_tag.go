package model

// ProductTag is the join row linking a product to a tag.
type ProductTag struct {
	ID        int64  `json:"id" db:"id"`
	ProductID *int64 `json:"product_id" db:"product_id"`
	TagID     *int64 `json:"tag_id" db:"tag_id"`
}
