package validation

import (
	"testing"

	"catalog-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidator_ProductInput(t *testing.T) {
	price := decimal.RequireFromString("14.99")
	v := New()

	tests := []struct {
		name         string
		input        model.ProductInput
		expectError  bool
		expectFields map[string]string
	}{
		{
			name:  "Valid product",
			input: model.ProductInput{ProductName: "Plain T-Shirt", Price: &price, Stock: intPtr(14)},
		},
		{
			name:        "Missing name and price",
			input:       model.ProductInput{},
			expectError: true,
			expectFields: map[string]string{
				"product_name": "is required",
				"price":        "is required",
			},
		},
		{
			name:        "Negative stock",
			input:       model.ProductInput{ProductName: "Cap", Price: &price, Stock: intPtr(-1)},
			expectError: true,
			expectFields: map[string]string{
				"stock": "must be greater than or equal to 0",
			},
		},
		{
			name:        "Invalid tag id",
			input:       model.ProductInput{ProductName: "Cap", Price: &price, TagIDs: []int64{1, 0}},
			expectError: true,
			expectFields: map[string]string{
				"tagIds[1]": "must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)

			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, model.NewValidationError("", nil))

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.expectFields, domainErr.Details)
		})
	}
}

func TestValidator_CategoryUpdate(t *testing.T) {
	v := New()
	empty := ""

	err := v.Validate(&model.CategoryUpdate{CategoryName: &empty})
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, map[string]string{"category_name": "must be at least 1 characters"}, domainErr.Details)

	assert.NoError(t, v.Validate(&model.CategoryUpdate{}))
}
