package service

import (
	"context"
	"errors"
	"testing"

	"catalog-api/internal/model"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService(repo *MockCategoryRepository) CategoryService {
	return NewCategoryService(repo, validation.New(), zerolog.Nop())
}

func TestCategoryService_FindAll(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCategoryRepository)
	svc := newTestCategoryService(mockRepo)

	categories := []model.Category{
		{ID: 1, CategoryName: "Shirts", Products: []model.Product{{ID: 1, ProductName: "Plain Tee"}}},
		{ID: 2, CategoryName: "Shorts", Products: []model.Product{}},
	}
	mockRepo.On("FindAll", ctx).Return(categories, nil)

	got, err := svc.FindAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, categories, got)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		input       *model.CategoryInput
		mockReturn  *model.Category
		mockError   error
		expectCode  string
		expectError bool
	}{
		{
			name:       "Success",
			input:      &model.CategoryInput{CategoryName: "Hats"},
			mockReturn: &model.Category{ID: 4, CategoryName: "Hats"},
		},
		{
			name:        "Missing name",
			input:       &model.CategoryInput{},
			expectError: true,
			expectCode:  model.ErrCodeValidation,
		},
		{
			name:        "Storage failure",
			input:       &model.CategoryInput{CategoryName: "Hats"},
			mockError:   model.NewStorageError("failed to create category", nil, errors.New("boom")),
			expectError: true,
			expectCode:  model.ErrCodeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			svc := newTestCategoryService(mockRepo)

			if tt.expectCode != model.ErrCodeValidation {
				mockRepo.On("Create", ctx, tt.input).Return(tt.mockReturn, tt.mockError)
			}

			category, err := svc.Create(ctx, tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, category)

				var domainErr *model.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.expectCode, domainErr.Code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, category)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Matched", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := newTestCategoryService(mockRepo)

		update := &model.CategoryUpdate{CategoryName: ptr("Tops")}
		mockRepo.On("Update", ctx, int64(1), update).Return(int64(1), nil)

		n, err := svc.Update(ctx, 1, update)

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := newTestCategoryService(mockRepo)

		_, err := svc.Update(ctx, 1, &model.CategoryUpdate{CategoryName: ptr("")})

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty body on missing category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := newTestCategoryService(mockRepo)

		mockRepo.On("Exists", ctx, int64(8)).Return(false, nil)

		_, err := svc.Update(ctx, 8, &model.CategoryUpdate{})

		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCategoryRepository)
	svc := newTestCategoryService(mockRepo)
	mockRepo.On("Delete", ctx, int64(3)).Return(int64(0), nil)

	_, err := svc.Delete(ctx, 3)

	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	assert.Equal(t, "No Category found with this id!", err.Error())
}
