package quote

import (
	"errors"
	"fmt"
)

var (
	// ErrRoutingUnavailable means no result can be shown for the request.
	ErrRoutingUnavailable = errors.New("routing unavailable")

	// ErrNotificationUnavailable means the estimate was computed but could not be emailed.
	ErrNotificationUnavailable = errors.New("notification unavailable")

	// ErrConfiguration means the notification service is missing credentials or addresses.
	ErrConfiguration = errors.New("notification service not configured")
)

// Field identifies the input that failed validation.
type Field string

const (
	FieldPickup   Field = "pickup"
	FieldDelivery Field = "delivery"
	FieldEmail    Field = "email"
)

// ValidationError reports bad user input. Message is safe to show to the user.
type ValidationError struct {
	Field   Field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field Field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
