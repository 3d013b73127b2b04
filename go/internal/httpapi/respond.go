// Package httpapi holds the JSON helpers shared by every HTTP service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func RespondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg(message)
	}
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	if err != nil {
		resp.Message = message + ": " + err.Error()
	}
	RespondJSON(w, status, resp)
}

// RespondAppError picks the status from the error class.
func RespondAppError(w http.ResponseWriter, message string, err error) {
	RespondError(w, StatusFor(err), message, err)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, pooldb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pooldb.ErrDuplicate), errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(models.ErrValidation, err)
	}
	return nil
}

// UUIDParam parses a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.Join(models.ErrValidation, err)
	}
	return id, nil
}

// UUIDQuery parses a query string value as a UUID.
func UUIDQuery(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.URL.Query().Get(name))
	if err != nil {
		return uuid.Nil, errors.Join(models.ErrValidation, err)
	}
	return id, nil
}
