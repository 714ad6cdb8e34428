package model

// Tag labels products. A tag may be attached to any number of products.
type Tag struct {
	ID      int64   `json:"id" db:"id"`
	TagName *string `json:"tag_name" db:"tag_name"`

	// Products is populated when the tag is loaded with its associations.
	Products []ProductWithLink `json:"products,omitzero"`
}

// TagWithLink is a tag embedded in a product, carrying the join row that links them.
type TagWithLink struct {
	Tag
	ProductTag ProductTag `json:"product_tag"`
}

// TagInput is the request payload for creating a tag.
type TagInput struct {
	TagName *string `json:"tag_name"`
}

// TagUpdate is the request payload for updating a tag.
type TagUpdate struct {
	TagName Nullable[string] `json:"tag_name"`
}

// HasFields reports whether the update touches any column.
func (u *TagUpdate) HasFields() bool {
	return u.TagName.Set
}
