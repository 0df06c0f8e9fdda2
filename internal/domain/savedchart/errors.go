package savedchart

import "errors"

var (
	// ErrChartNotFound indicates the saved chart doesn't exist for the tenant.
	ErrChartNotFound = errors.New("chart not found")
	// ErrInvalidInput indicates invalid saved chart input.
	ErrInvalidInput = errors.New("invalid chart input")
)
