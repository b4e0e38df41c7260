package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JorgeWendell/clinics/internal/scheduling"
)

// ValidationError a field-level input failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError unwraps a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func parseDateField(field, value string) (scheduling.Date, error) {
	d, err := scheduling.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return scheduling.Date{}, invalidField(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// parseOptionalDate returns the zero Date for an empty value.
func parseOptionalDate(field, value string) (scheduling.Date, error) {
	if strings.TrimSpace(value) == "" {
		return scheduling.Date{}, nil
	}
	return parseDateField(field, value)
}

func normalizeTimeField(field, value string) (string, error) {
	t, err := scheduling.NormalizeTime(strings.TrimSpace(value))
	if err != nil {
		return "", invalidField(field, "must be a time in HH:MM format")
	}
	return t, nil
}
