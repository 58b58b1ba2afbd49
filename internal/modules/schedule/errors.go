package schedule

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrDateTaken     = errors.New("another worker already has this vacation date")
	ErrVacationLimit = errors.New("vacation day limit reached")
)
