package models

import "errors"

// Sentinel errors for input validation. The scheduler itself never fails;
// these are raised while building rosters and requirement tables.
var (
	ErrUnknownSlot       = errors.New("unknown shift slot")
	ErrInvalidDate       = errors.New("invalid date")
	ErrDateRange         = errors.New("invalid date range")
	ErrNegativeCount     = errors.New("required count must not be negative")
	ErrEmptyRoster       = errors.New("roster is empty")
	ErrEmptyName         = errors.New("employee name is required")
	ErrDuplicateEmployee = errors.New("duplicate employee name")
)
