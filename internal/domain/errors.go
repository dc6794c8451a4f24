package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUploadNotFound       = errors.New("upload not found")
	ErrInvalidToken         = errors.New("invalid token")
	ErrQuotaExceeded        = errors.New("daily conversion quota exceeded")
	ErrConflict             = errors.New("row changed concurrently")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
