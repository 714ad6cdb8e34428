package handler

import (
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrProductNotFound.Message)
		return
	}

	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests. The body may carry tagIds to
// link the new product to existing tags.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id} requests. A tagIds array, when present,
// becomes the product's complete tag set.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrProductNotFound.Message)
		return
	}

	var update model.ProductUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	n, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MutationResult{RowsAffected: n})
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrProductNotFound.Message)
		return
	}

	n, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MutationResult{RowsAffected: n})
}
