package domain

import "errors"

var (
	ErrConfirmationRequired = errors.New("destructive action requires explicit confirmation")
	ErrProfileNameEmpty     = errors.New("display name cannot be empty")
	ErrProfileNotFound      = errors.New("no user is logged in")
	ErrInvalidTheme         = errors.New("theme index cannot be negative")
	ErrFutureWindow         = errors.New("analytics window cannot start in the future")
	ErrInvalidScale         = errors.New("invalid scale (must be week, month, or year)")
)
