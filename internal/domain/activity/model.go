package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeChartCreated    ActivityType = "chart_created"
	TypeChartRebuilt    ActivityType = "chart_rebuilt"
	TypeChartDeleted    ActivityType = "chart_deleted"
	TypeCatalogImported ActivityType = "catalog_imported"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeChartCreated, TypeChartRebuilt, TypeChartDeleted, TypeCatalogImported:
		return true
	}
	return false
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	ChartID      *string      `json:"chart_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
