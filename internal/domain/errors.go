package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("this order's status is final and cannot be changed")
	ErrConflict          = errors.New("conflicting concurrent update, refresh and retry")
)
