package repository

import "fmt"

// NotFoundError is an error type for when a resource is not found.
type NotFoundError struct {
	message string
}

// NewNotFoundError creates a NotFoundError with the given message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{message: message}
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}

// ApplianceNotFoundError identifies which appliance of a strict batch update
// was missing, so callers can name it in their response.
type ApplianceNotFoundError struct {
	ApplianceID uint
}

// Error returns the error message.
func (e ApplianceNotFoundError) Error() string {
	return fmt.Sprintf("appliance %d not found", e.ApplianceID)
}
