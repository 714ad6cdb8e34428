// Package seed loads catalogue snapshots from gzipped JSON bundles and
// writes them to the database.
package seed

import (
	"compress/gzip"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"catalog-api/internal/model"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Loader defines the interface for loading seed bundles.
type Loader interface {
	// Load reads a gzipped JSON bundle and returns the snapshot it holds.
	Load(ctx context.Context, path string) (*model.CatalogSnapshot, error)
}

// bundle is the on-disk form of a snapshot. Product stock is optional and
// defaults to model.DefaultStock, as it does for products created over the API.
type bundle struct {
	model.CatalogSnapshot
	Products []bundleProduct `json:"products"`
}

type bundleProduct struct {
	model.Product
	Stock *int `json:"stock"`
}

func (b *bundle) snapshot() *model.CatalogSnapshot {
	snapshot := b.CatalogSnapshot
	snapshot.Products = make([]model.Product, len(b.Products))
	for i, bp := range b.Products {
		p := bp.Product
		p.Stock = model.DefaultStock
		if bp.Stock != nil {
			p.Stock = *bp.Stock
		}
		snapshot.Products[i] = p
	}
	return &snapshot
}

// Default returns the catalogue bundled with the binary.
func Default() (*model.CatalogSnapshot, error) {
	var b bundle
	if err := json.Unmarshal(defaultCatalog, &b); err != nil {
		return nil, fmt.Errorf("failed to parse default catalogue: %w", err)
	}
	return b.snapshot(), nil
}

// Decode reads a gzipped JSON snapshot from r.
func Decode(r io.Reader) (*model.CatalogSnapshot, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var b bundle
	dec := json.NewDecoder(gzipReader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode seed bundle: %w", err)
	}

	return b.snapshot(), nil
}

// Encode writes snapshot to w as gzipped JSON.
func Encode(w io.Writer, snapshot *model.CatalogSnapshot) error {
	gzipWriter := gzip.NewWriter(w)

	enc := json.NewEncoder(gzipWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		_ = gzipWriter.Close()
		return fmt.Errorf("failed to encode seed bundle: %w", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush seed bundle: %w", err)
	}
	return nil
}

// Validate checks that IDs are unique per table and that every reference
// resolves within the snapshot.
func Validate(snapshot *model.CatalogSnapshot) error {
	categories := make(map[int64]struct{}, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		if _, dup := categories[c.ID]; dup {
			return fmt.Errorf("duplicate category id %d", c.ID)
		}
		categories[c.ID] = struct{}{}
	}

	products := make(map[int64]struct{}, len(snapshot.Products))
	for _, p := range snapshot.Products {
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		products[p.ID] = struct{}{}

		if p.CategoryID == nil {
			continue
		}
		if _, ok := categories[*p.CategoryID]; !ok {
			return fmt.Errorf("product %d references unknown category %d", p.ID, *p.CategoryID)
		}
	}

	tags := make(map[int64]struct{}, len(snapshot.Tags))
	for _, t := range snapshot.Tags {
		if _, dup := tags[t.ID]; dup {
			return fmt.Errorf("duplicate tag id %d", t.ID)
		}
		tags[t.ID] = struct{}{}
	}

	links := make(map[int64]struct{}, len(snapshot.ProductTags))
	for _, pt := range snapshot.ProductTags {
		if _, dup := links[pt.ID]; dup {
			return fmt.Errorf("duplicate product_tag id %d", pt.ID)
		}
		links[pt.ID] = struct{}{}

		if pt.ProductID != nil {
			if _, ok := products[*pt.ProductID]; !ok {
				return fmt.Errorf("product_tag %d references unknown product %d", pt.ID, *pt.ProductID)
			}
		}
		if pt.TagID != nil {
			if _, ok := tags[*pt.TagID]; !ok {
				return fmt.Errorf("product_tag %d references unknown tag %d", pt.ID, *pt.TagID)
			}
		}
	}

	return nil
}
