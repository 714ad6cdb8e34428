package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	validator   Validator
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, validator Validator, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		validator:   validator,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// FindAll retrieves all products with their category and tags.
func (s *productService) FindAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// FindByID retrieves a single product.
func (s *productService) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		s.logger.Warn().Int64("product_id", id).Msg("product ID is not positive")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and stores a new product together with its tag links.
// Stock defaults to model.DefaultStock when omitted.
func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	if err := s.validator.Validate(input); err != nil {
		s.logger.Warn().Err(err).Msg("invalid product")
		return nil, err
	}

	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	if input.Stock == nil {
		stock := model.DefaultStock
		input.Stock = &stock
	}

	product, err := s.productRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("product_name", product.ProductName).
		Int("tag_count", len(input.TagIDs)).
		Msg("product created")

	return product, nil
}

// Update applies the supplied fields and tag set and returns the number of rows matched.
func (s *productService) Update(ctx context.Context, id int64, update *model.ProductUpdate) (int64, error) {
	if id <= 0 {
		return 0, model.ErrProductNotFound
	}

	if err := s.validator.Validate(update); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("invalid product update")
		return 0, err
	}

	if err := validatePrice(update.Price); err != nil {
		return 0, err
	}

	if update.TagIDs != nil {
		for _, tagID := range *update.TagIDs {
			if tagID <= 0 {
				return 0, model.NewValidationError("validation failed", map[string]string{
					"tagIds": "must be greater than 0",
				})
			}
		}
	}

	touched := update.HasFields() || update.TagIDs != nil

	var matched int64
	if touched {
		n, err := s.productRepo.Update(ctx, id, update)
		if err != nil {
			return 0, fmt.Errorf("failed to update product: %w", err)
		}
		matched = n
	}

	matched, err := resolveMatched(ctx, id, matched, touched, s.productRepo.Exists, model.ErrProductNotFound)
	if err != nil {
		return 0, err
	}

	s.logger.Debug().Int64("product_id", id).Int64("rows_affected", matched).Msg("product updated")

	return matched, nil
}

// Delete removes a product and returns the number of rows deleted.
func (s *productService) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, model.ErrProductNotFound
	}

	n, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	if n == 0 {
		s.logger.Debug().Int64("product_id", id).Msg("product not found for delete")
		return 0, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return n, nil
}

// validatePrice rejects negative prices. A nil price is left to the struct rules.
func validatePrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return model.NewValidationError("validation failed", map[string]string{
			"price": "must be greater than or equal to 0",
		})
	}
	return nil
}
