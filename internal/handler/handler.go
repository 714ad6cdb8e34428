package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"catalog-api/internal/middleware"
	"catalog-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies on write routes.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful can reach the client.
		return
	}
}

// writeNotFound writes the 404 body used for every missing record.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, model.NotFoundResponse{Message: message})
}

// writeError maps err onto a response. Missing records become 404 and bad input
// becomes 400; any other failure is reported with failStatus.
func writeError(w http.ResponseWriter, r *http.Request, err error, failStatus int, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = model.NewDomainError(model.ErrCodeInternalError, err.Error())
	}

	if domainErr.Code == model.ErrCodeNotFound {
		writeNotFound(w, domainErr.Message)
		return
	}

	status := failStatus
	switch domainErr.Code {
	case model.ErrCodeInvalidJSON, model.ErrCodeValidation:
		status = http.StatusBadRequest
	}

	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Error()
	if status < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event.Err(err).
		Str("code", domainErr.Code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         domainErr.Message,
		Code:          domainErr.Code,
		Details:       domainErr.Details,
		CorrelationID: requestID,
	})
}

// parseID reads the {id} path parameter. ok is false when it cannot name a row.
// Id columns are 32-bit, so anything past math.MaxInt32 is reported as missing.
func parseID(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst. An empty body decodes as {}.
// The body must hold exactly one JSON value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return invalidJSON(err.Error())
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return invalidJSON("request body must contain a single JSON value")
	}
	return nil
}

func invalidJSON(details string) *model.DomainError {
	return &model.DomainError{
		Code:    model.ErrCodeInvalidJSON,
		Message: "invalid request body",
		Details: details,
	}
}
