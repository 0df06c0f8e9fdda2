package savedchart

import (
	"encoding/json"
	"time"

	"github.com/ganot/roadmap/internal/domain/chart"
)

// MaxTitleLength bounds a saved chart title, in characters.
const MaxTitleLength = 200

// SavedChart is a roadmap a tenant chose to keep. Chart holds the document
// exactly as it was built; it is never recomputed in place.
type SavedChart struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	Title         string          `json:"title"`
	MineralTypeID int64           `json:"mineral_type_id"`
	StartStageID  int64           `json:"start_stage_id"`
	QuestionID    *int64          `json:"question_id,omitempty"`
	TotalDuration int             `json:"total_duration"`
	Chart         json.RawMessage `json:"chart"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Conflicts is filled in when the chart is built and is not stored.
	Conflicts []chart.Conflict `json:"conflicts,omitempty"`
}

// Request returns the build parameters the chart was made from.
func (c SavedChart) Request() chart.Request {
	return chart.Request{
		MineralTypeID: c.MineralTypeID,
		StartStageID:  c.StartStageID,
		QuestionID:    c.QuestionID,
	}
}

// ChartSummary is a lightweight representation for listing
type ChartSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	MineralTypeID int64     `json:"mineral_type_id"`
	StartStageID  int64     `json:"start_stage_id"`
	QuestionID    *int64    `json:"question_id,omitempty"`
	TotalDuration int       `json:"total_duration"`
	CreatedAt     time.Time `json:"created_at"`
}

// Preview is a built but unsaved roadmap.
type Preview struct {
	Document  chart.Document   `json:"chart"`
	Conflicts []chart.Conflict `json:"conflicts,omitempty"`
}

// ListOptions filters saved chart listings.
type ListOptions struct {
	MineralTypeID *int64
	Limit         int
	Offset        int
}
