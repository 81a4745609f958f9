package internal

import "errors"

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDate      = errors.New("invalid date")
	ErrCorruptStore     = errors.New("expense store is unreadable")
	ErrUnknownBackend   = errors.New("unknown backend")
)
