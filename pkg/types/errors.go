package types

import "errors"

// Store operation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidText     = errors.New("text is not valid UTF-8")
	ErrNoSelection     = errors.New("no task selected")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrNotConfirmed    = errors.New("operation not confirmed")
)

// Persistence errors.
var (
	ErrMalformed = errors.New("malformed task file")
	ErrClosed    = errors.New("persister is closed")
)
