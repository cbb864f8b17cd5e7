package workflow

import (
	"errors"
	"net/http"
)

// HTTPStatus maps workflow errors onto HTTP status codes: missing records
// map to 404, rejected transitions and unavailable resources to 409,
// malformed input to 400, everything else to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case IsInvalidTransition(err), IsUnavailable(err):
		return http.StatusConflict
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
