package handler

import (
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// GetAll handles GET /api/categories requests.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /api/categories/{id} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrCategoryNotFound.Message)
		return
	}

	category, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Create handles POST /api/categories requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.CategoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Update handles PUT /api/categories/{id} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrCategoryNotFound.Message)
		return
	}

	var update model.CategoryUpdate
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

// Delete handles DELETE /api/categories/{id} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrCategoryNotFound.Message)
		return
	}

	n, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MutationResult{RowsAffected: n})
}
