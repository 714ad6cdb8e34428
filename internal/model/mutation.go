package model

// MutationResult is returned by update and delete operations.
type MutationResult struct {
	RowsAffected int64 `json:"rowsAffected"`
}

// NotFoundResponse is the body returned when a record does not exist.
type NotFoundResponse struct {
	Message string `json:"message"`
}
