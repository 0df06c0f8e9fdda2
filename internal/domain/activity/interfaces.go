package activity

import "context"

// Repository is the append-only store behind the activity log. Entries are
// never updated or removed.
type Repository interface {
	Append(ctx context.Context, tenantID string, entry *ActivityEntry) error
	List(ctx context.Context, tenantID string, opts ListActivityOptions) ([]ActivityEntry, error)
}
