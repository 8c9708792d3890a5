package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a requested quantity exceeds the stock left.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateID is returned when adding a product whose id is already taken.
	ErrDuplicateID = errors.New("duplicate product id")
	// ErrInvalidInput covers out-of-range or malformed values supplied by a caller.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedRecord is wrapped by every ParseError.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ParseError describes one persisted record that could not be decoded.
type ParseError struct {
	Line   int
	Record string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Record)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Record)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedRecord
}
