package reservation

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("reservation not found")
	ErrPhoneRequired = errors.New("phone number filter is required")
)
