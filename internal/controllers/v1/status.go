package v1

import (
	"errors"
	"net/http"

	"github.com/budgetbook/backend/internal/models"
)

// httpError is the response body for requests that do not return a resource
// envelope.
type httpError struct {
	Error string `json:"error" example:"there is no budget matching your query"`
}

// status maps an error to the HTTP status code of the response.
//
// Database errors have already been rewritten to user-facing sentinel errors
// by the callbacks in the models package, so everything that is neither a
// not-found nor the general server error is a client error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
