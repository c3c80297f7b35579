package errs

import (
	"errors"
	"net/http"
)

// Status maps an error to the HTTP status and short code the API reports.
// Uniqueness conflicts surface as 400, not 409.
func Status(err error) (int, string) {
	var (
		notFound  *NotFoundError
		exists    *AlreadyExistsError
		invalid   *ValidationError
		unauth    *UnauthorizedError
		forbidden *ForbiddenError
		database  *DatabaseError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &exists):
		return http.StatusBadRequest, "already_exists"
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &unauth):
		return http.StatusUnauthorized, "unauthorized"
	case errors.As(err, &forbidden):
		return http.StatusForbidden, "forbidden"
	case errors.As(err, &database):
		return http.StatusInternalServerError, "database_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
