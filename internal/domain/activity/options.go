package activity

import "fmt"

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListActivityOptions filters GetRecentActivity. Nil filters match all.
type ListActivityOptions struct {
	ChartID      *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

// normalize rejects unknown types and negative offsets and clamps Limit
// into 1..MaxListLimit, defaulting to DefaultListLimit.
func (o ListActivityOptions) normalize() (ListActivityOptions, error) {
	if o.ActivityType != nil && !o.ActivityType.Valid() {
		return o, fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, *o.ActivityType)
	}
	if o.Offset < 0 {
		return o, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListLimit
	case o.Limit > MaxListLimit:
		o.Limit = MaxListLimit
	}
	return o, nil
}
