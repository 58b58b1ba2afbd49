package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("one or more slots already booked")
	ErrNotFound   = errors.New("booking not found")
)
