package handler

import (
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"

	"github.com/rs/zerolog"
)

// TagHandler handles tag-related HTTP requests.
type TagHandler struct {
	service service.TagService
	logger  zerolog.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(service service.TagService, logger zerolog.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		logger:  logger.With().Str("handler", "tag").Logger(),
	}
}

// GetAll handles GET /api/tags requests.
func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// GetByID handles GET /api/tags/{id} requests.
func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrTagNotFound.Message)
		return
	}

	tag, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Create handles POST /api/tags requests.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.TagInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	tag, err := h.service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// Update handles PUT /api/tags/{id} requests.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrTagNotFound.Message)
		return
	}

	var update model.TagUpdate
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

// Delete handles DELETE /api/tags/{id} requests.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeNotFound(w, model.ErrTagNotFound.Message)
		return
	}

	n, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MutationResult{RowsAffected: n})
}
