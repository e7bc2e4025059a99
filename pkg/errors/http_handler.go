package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError renders err as the standard error body with its mapped status.
// Errors that are not AppErrors are treated as internal.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	return json.NewEncoder(w).Encode(appErr.Response())
}
