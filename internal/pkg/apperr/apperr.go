// Package apperr holds the error kinds shared by every domain package.
// Domain sentinels wrap one of these kinds so handlers can map any error
// to a status code with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
	ErrPersistence  = errors.New("persistence error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Wrap attaches a kind to a message.
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Persistence wraps a backend failure, keeping the backend message.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// Message strips the kind prefix from err for display.
func Message(err error) string {
	msg := err.Error()
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrValidation, ErrPersistence, ErrConflict, ErrUnauthorized} {
		prefix := kind.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
