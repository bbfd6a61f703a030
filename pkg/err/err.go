package errprocess

import (
	"errors"
	"fmt"

	"github.com/Saieshwar5/sangam-sub001/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Kind classify an error for transport mapping
type Kind int

const (
	// KindInternal unclassified server side error
	KindInternal Kind = iota
	// KindAuth missing / invalid / expired credential
	KindAuth
	// KindValidation malformed or rejected input
	KindValidation
	// KindNotFound unknown message or room
	KindNotFound
	// KindForbidden caller does not own the mutated resource
	KindForbidden
)

// AppError error with a Kind attached
type AppError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap expose the wrapped cause
func (e *AppError) Unwrap() error { return e.Err }

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// New create an AppError of the given kind
func New(kind Kind, msg string) error {
	return &AppError{Kind: kind, Msg: msg}
}

// Wrap attach a kind and message to an underlying error
func Wrap(kind Kind, msg string, err error) error {
	return &AppError{Kind: kind, Msg: msg, Err: err}
}

// Auth auth failure
func Auth(msg string) error { return New(KindAuth, msg) }

// Validation input rejected
func Validation(msg string) error { return New(KindValidation, msg) }

// NotFound resource missing
func NotFound(msg string) error { return New(KindNotFound, msg) }

// Forbidden caller not allowed
func Forbidden(msg string) error { return New(KindForbidden, msg) }

// KindOf return the Kind carried by err, KindInternal when none
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusCode map an error onto the HTTP status handlers return
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
