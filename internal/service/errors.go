package service

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError rejects malformed client input before any upstream call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// validID reports whether id can name a stored row. Anything else can only
// ever be "not found".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
