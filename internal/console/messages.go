package console

import (
	"errors"
	"strings"

	"tienda/internal/domain"
)

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Not enough stock: " + detail(err, domain.ErrInsufficientStock)
	case errors.Is(err, domain.ErrNotFound):
		return "Not found: " + detail(err, domain.ErrNotFound)
	case errors.Is(err, domain.ErrDuplicateID):
		return "That id is already in use: " + detail(err, domain.ErrDuplicateID)
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input: " + detail(err, domain.ErrInvalidInput)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Access denied."
	case err == nil:
		return ""
	}
	return "Something went wrong: " + err.Error()
}

// detail strips the sentinel text from the wrapped message.
func detail(err, sentinel error) string {
	msg := err.Error()
	msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	return msg
}
