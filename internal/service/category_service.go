package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	validator    Validator
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, validator Validator, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		validator:    validator,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// FindAll retrieves all categories with their products.
func (s *categoryService) FindAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// FindByID retrieves a single category.
func (s *categoryService) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, model.ErrCategoryNotFound
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category by ID")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

// Create validates and stores a new category.
func (s *categoryService) Create(ctx context.Context, input *model.CategoryInput) (*model.Category, error) {
	if err := s.validator.Validate(input); err != nil {
		s.logger.Warn().Err(err).Msg("invalid category")
		return nil, err
	}

	category, err := s.categoryRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("category_name", category.CategoryName).
		Msg("category created")

	return category, nil
}

// Update applies the supplied fields and returns the number of rows matched.
func (s *categoryService) Update(ctx context.Context, id int64, update *model.CategoryUpdate) (int64, error) {
	if id <= 0 {
		return 0, model.ErrCategoryNotFound
	}

	if err := s.validator.Validate(update); err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("invalid category update")
		return 0, err
	}

	var matched int64
	if update.HasFields() {
		n, err := s.categoryRepo.Update(ctx, id, update)
		if err != nil {
			return 0, fmt.Errorf("failed to update category: %w", err)
		}
		matched = n
	}

	matched, err := resolveMatched(ctx, id, matched, update.HasFields(), s.categoryRepo.Exists, model.ErrCategoryNotFound)
	if err != nil {
		return 0, err
	}

	s.logger.Debug().Int64("category_id", id).Int64("rows_affected", matched).Msg("category updated")

	return matched, nil
}

// Delete removes a category and returns the number of rows deleted.
func (s *categoryService) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, model.ErrCategoryNotFound
	}

	n, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	if n == 0 {
		s.logger.Debug().Int64("category_id", id).Msg("category not found for delete")
		return 0, model.ErrCategoryNotFound
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")

	return n, nil
}
