package model

// CatalogSnapshot is a complete set of catalogue rows, used for seeding.
// Rows carry explicit IDs so that references between them resolve.
type CatalogSnapshot struct {
	Categories  []Category   `json:"categories"`
	Products    []Product    `json:"products"`
	Tags        []Tag        `json:"tags"`
	ProductTags []ProductTag `json:"product_tags"`
}

// Merge appends the rows of other to s.
func (s *CatalogSnapshot) Merge(other *CatalogSnapshot) {
	s.Categories = append(s.Categories, other.Categories...)
	s.Products = append(s.Products, other.Products...)
	s.Tags = append(s.Tags, other.Tags...)
	s.ProductTags = append(s.ProductTags, other.ProductTags...)
}
