package user

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/sbasnet/pscprep/internal/service"
)

// statusFor maps service errors onto HTTP statuses: invalid-state and
// missing-reference errors are client errors, anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAttemptAlreadyCompleted),
		errors.Is(err, service.ErrAttemptNotInProgress),
		errors.Is(err, service.ErrAttemptNotCompleted),
		errors.Is(err, service.ErrOptionMismatch):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAttemptForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrOptionNotFound),
		errors.Is(err, service.ErrTestNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
