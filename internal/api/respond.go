package api

import (
	"encoding/json"
	"net/http"

	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope for all endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a pipeline error to an HTTP status: invalid input 400,
// not found 404, unavailable 503, anything else 500.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	} else {
		log.Debugf("request rejected: %v", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeJSON parses the request body into dst, rejecting malformed JSON as
// invalid input.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "invalid JSON body")
	}
	return nil
}

// requirePost rejects non-POST methods.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return false
	}
	return true
}
