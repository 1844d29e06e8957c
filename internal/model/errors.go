package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("saldo insuficient")
	ErrConflict            = errors.New("conflict")
)

var (
	ErrUserNotFound  error = &notFoundError{msg: "usuari no trobat"}
	ErrItemNotFound  error = &notFoundError{msg: "item no trobat"}
	ErrPlantNotFound error = &notFoundError{msg: "planta no trobada"}
)

// notFoundError names the missing resource and matches ErrNotFound.
type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string {
	return e.msg
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports malformed or inconsistent input. Its message is safe to show clients.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// PersistenceError wraps any store failure that is not one of the domain errors above.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	_, ok := target.(*PersistenceError)
	return ok
}
