package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Replace(ctx context.Context, snapshot *model.CatalogSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func TestSeeder_Run_Default(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("Replace", mock.Anything, mock.MatchedBy(func(s *model.CatalogSnapshot) bool {
		return len(s.Products) == 5 && len(s.ProductTags) == 12
	})).Return(nil)

	seeder := NewSeeder(&mockLoader{}, repo, zerolog.Nop())

	snapshot, err := seeder.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, snapshot.Categories, 5)
	repo.AssertExpectations(t)
}

func TestSeeder_Load_MergesInOrder(t *testing.T) {
	// The first file finishes last; the merge must still follow argument order.
	loader := &mockLoader{
		loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
			switch path {
			case "categories.json.gz":
				time.Sleep(20 * time.Millisecond)
				return &model.CatalogSnapshot{Categories: []model.Category{{ID: 1, CategoryName: "Shirts"}}}, nil
			case "more-categories.json.gz":
				return &model.CatalogSnapshot{Categories: []model.Category{{ID: 2, CategoryName: "Shorts"}}}, nil
			}
			return nil, errors.New("unexpected path")
		},
	}

	seeder := NewSeeder(loader, new(MockCatalogRepository), zerolog.Nop())

	snapshot, err := seeder.Load(context.Background(), "categories.json.gz", "more-categories.json.gz")

	require.NoError(t, err)
	require.Len(t, snapshot.Categories, 2)
	assert.Equal(t, "Shirts", snapshot.Categories[0].CategoryName)
	assert.Equal(t, "Shorts", snapshot.Categories[1].CategoryName)
}

func TestSeeder_Run_Errors(t *testing.T) {
	productID := int64(1)
	tagID := int64(7)

	tests := []struct {
		name       string
		loadFunc   func(ctx context.Context, path string) (*model.CatalogSnapshot, error)
		replaceErr error
		expectCall bool
		errMatch   string
	}{
		{
			name: "Load failure names the file",
			loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
				return nil, errors.New("disk error")
			},
			errMatch: "failed to load seed file a.json.gz",
		},
		{
			name: "Inconsistent bundle is rejected before writing",
			loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
				return &model.CatalogSnapshot{
					Products:    []model.Product{{ID: productID}},
					ProductTags: []model.ProductTag{{ID: 1, ProductID: &productID, TagID: &tagID}},
				}, nil
			},
			errMatch: "invalid seed bundle",
		},
		{
			name: "Repository failure",
			loadFunc: func(ctx context.Context, path string) (*model.CatalogSnapshot, error) {
				return &model.CatalogSnapshot{}, nil
			},
			replaceErr: errors.New("tx aborted"),
			expectCall: true,
			errMatch:   "failed to apply seed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			if tt.expectCall {
				repo.On("Replace", mock.Anything, mock.Anything).Return(tt.replaceErr)
			}

			seeder := NewSeeder(&mockLoader{loadFunc: tt.loadFunc}, repo, zerolog.Nop())

			_, err := seeder.Run(context.Background(), "a.json.gz")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
			repo.AssertExpectations(t)
			if !tt.expectCall {
				repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
			}
		})
	}
}
