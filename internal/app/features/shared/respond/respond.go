// Package respond centralizes JSON response writing and the mapping from
// domain errors to HTTP status codes for the API features.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"go.uber.org/zap"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// Error maps a domain error to a status code and writes it. Invalid input
// and unknown identifiers are client errors; conflicts are 409; failed
// authentication is 401. Anything else, store failures included, is
// reported as a generic 500 without leaking internal detail.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument), errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
