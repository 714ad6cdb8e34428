package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// tagService implements TagService.
type tagService struct {
	tagRepo repository.TagRepository
	logger  zerolog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository, logger zerolog.Logger) TagService {
	return &tagService{
		tagRepo: tagRepo,
		logger:  logger.With().Str("service", "tag").Logger(),
	}
}

// FindAll retrieves all tags with their products.
func (s *tagService) FindAll(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all tags")
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	s.logger.Debug().Int("count", len(tags)).Msg("retrieved tags")

	return tags, nil
}

// FindByID retrieves a single tag.
func (s *tagService) FindByID(ctx context.Context, id int64) (*model.Tag, error) {
	if id <= 0 {
		return nil, model.ErrTagNotFound
	}

	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to get tag by ID")
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	if tag == nil {
		s.logger.Debug().Int64("tag_id", id).Msg("tag not found")
		return nil, model.ErrTagNotFound
	}

	return tag, nil
}

// Create stores a new tag. A tag without a name is allowed.
func (s *tagService) Create(ctx context.Context, input *model.TagInput) (*model.Tag, error) {
	tag, err := s.tagRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.logger.Info().Int64("tag_id", tag.ID).Msg("tag created")

	return tag, nil
}

// Update applies the supplied fields and returns the number of rows matched.
func (s *tagService) Update(ctx context.Context, id int64, update *model.TagUpdate) (int64, error) {
	if id <= 0 {
		return 0, model.ErrTagNotFound
	}

	var matched int64
	if update.HasFields() {
		n, err := s.tagRepo.Update(ctx, id, update)
		if err != nil {
			return 0, fmt.Errorf("failed to update tag: %w", err)
		}
		matched = n
	}

	matched, err := resolveMatched(ctx, id, matched, update.HasFields(), s.tagRepo.Exists, model.ErrTagNotFound)
	if err != nil {
		return 0, err
	}

	s.logger.Debug().Int64("tag_id", id).Int64("rows_affected", matched).Msg("tag updated")

	return matched, nil
}

// Delete removes a tag and returns the number of rows deleted.
func (s *tagService) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, model.ErrTagNotFound
	}

	n, err := s.tagRepo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tag: %w", err)
	}

	if n == 0 {
		s.logger.Debug().Int64("tag_id", id).Msg("tag not found for delete")
		return 0, model.ErrTagNotFound
	}

	s.logger.Info().Int64("tag_id", id).Msg("tag deleted")

	return n, nil
}
