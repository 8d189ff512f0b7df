package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Analytics parameters
	case errors.Is(err, analytics.ErrInvalidParameter),
		errors.Is(err, analytics.ErrInvalidDateFormat),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, analytics.ErrRangeTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, analytics.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Snapshots
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
		NotFound(w, "Snapshot not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
