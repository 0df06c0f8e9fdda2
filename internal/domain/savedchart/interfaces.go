package savedchart

import (
	"context"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
)

// ChartRepository persists saved charts.
type ChartRepository interface {
	Create(ctx context.Context, tenantID string, c *SavedChart) error
	Get(ctx context.Context, tenantID, id string) (*SavedChart, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]ChartSummary, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// CatalogSource supplies the reference data charts are built from.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// ActivityRepository records chart lifecycle events.
type ActivityRepository interface {
	Append(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
