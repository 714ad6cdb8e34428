package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/handler"
	"catalog-api/internal/model"
	"catalog-api/internal/ratelimit"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategoryService struct{}

func (stubCategoryService) FindAll(context.Context) ([]model.Category, error) {
	return []model.Category{}, nil
}
func (stubCategoryService) FindByID(context.Context, int64) (*model.Category, error) {
	return nil, model.ErrCategoryNotFound
}
func (stubCategoryService) Create(_ context.Context, in *model.CategoryInput) (*model.Category, error) {
	return &model.Category{ID: 1, CategoryName: in.CategoryName}, nil
}
func (stubCategoryService) Update(context.Context, int64, *model.CategoryUpdate) (int64, error) {
	return 1, nil
}
func (stubCategoryService) Delete(context.Context, int64) (int64, error) {
	return 1, nil
}

type stubProductService struct{}

func (stubProductService) FindAll(context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}
func (stubProductService) FindByID(context.Context, int64) (*model.Product, error) {
	return nil, model.ErrProductNotFound
}
func (stubProductService) Create(_ context.Context, in *model.ProductInput) (*model.Product, error) {
	return &model.Product{ID: 1, ProductName: in.ProductName}, nil
}
func (stubProductService) Update(context.Context, int64, *model.ProductUpdate) (int64, error) {
	return 1, nil
}
func (stubProductService) Delete(context.Context, int64) (int64, error) {
	return 1, nil
}

type stubTagService struct{}

func (stubTagService) FindAll(context.Context) ([]model.Tag, error) {
	return []model.Tag{}, nil
}
func (stubTagService) FindByID(context.Context, int64) (*model.Tag, error) {
	return nil, model.ErrTagNotFound
}
func (stubTagService) Create(_ context.Context, in *model.TagInput) (*model.Tag, error) {
	return &model.Tag{ID: 1, TagName: in.TagName}, nil
}
func (stubTagService) Update(context.Context, int64, *model.TagUpdate) (int64, error) {
	return 1, nil
}
func (stubTagService) Delete(context.Context, int64) (int64, error) {
	return 1, nil
}

func newTestRouter(opts Options) http.Handler {
	logger := zerolog.Nop()
	return New(Handlers{
		Category: handler.NewCategoryHandler(stubCategoryService{}, logger),
		Product:  handler.NewProductHandler(stubProductService{}, logger),
		Tag:      handler.NewTagHandler(stubTagService{}, logger),
	}, opts, logger)
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(Options{})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"Health", http.MethodGet, "/health", http.StatusOK},
		{"List categories", http.MethodGet, "/api/categories", http.StatusOK},
		{"List products", http.MethodGet, "/api/products", http.StatusOK},
		{"List tags", http.MethodGet, "/api/tags", http.StatusOK},
		{"Missing tag", http.MethodGet, "/api/tags/5", http.StatusNotFound},
		{"Delete product", http.MethodDelete, "/api/products/5", http.StatusOK},
		{"Update category", http.MethodPut, "/api/categories/5", http.StatusOK},
		{"Unknown route", http.MethodGet, "/api/orders", http.StatusNotFound},
		{"Unsupported method", http.MethodPatch, "/api/tags/1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_MissingRecordBody(t *testing.T) {
	r := newTestRouter(Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/categories/9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "No Category found with this id!", body["message"])
}

func TestRouter_APIKey(t *testing.T) {
	r := newTestRouter(Options{APIKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(Options{APIKey: "secret", AllowedOrigins: []string{"https://shop.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	limiter := ratelimit.New(1, 1)
	defer limiter.Stop()

	r := newTestRouter(Options{RateLimiter: limiter})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/tags", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
