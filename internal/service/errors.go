package service

import (
	"errors"
	"fmt"
)

// The three recoverable failure classes. Handlers map them to status codes;
// none of them leaves state behind.
var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicateKey = errors.New("product code already exists")
)

// ValidationError covers rejected input: missing import columns, an empty
// parsed table, invalid quantities or fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
