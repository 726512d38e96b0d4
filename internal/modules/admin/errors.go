package admin

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("reservation not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
