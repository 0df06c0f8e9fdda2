package mcp

import (
	"encoding/json"
	"time"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
)

type ListMineralTypesParams struct{}

type ListStagesParams struct {
	MineralTypeID int64 `json:"mineral_type_id" jsonschema:"mineral type to list stages for"`
}

type ListQuestionsParams struct {
	MineralTypeID int64 `json:"mineral_type_id" jsonschema:"mineral type to list questions for"`
}

type ListWorksParams struct {
	StageID int64 `json:"stage_id" jsonschema:"stage to list works for"`
}

type PreviewChartParams struct {
	MineralTypeID int64  `json:"mineral_type_id" jsonschema:"mineral type of the project"`
	StartStageID  int64  `json:"start_stage_id" jsonschema:"stage the project starts at"`
	QuestionID    *int64 `json:"question_id,omitempty" jsonschema:"question that selects the target stages; omit to chart every stage from the start"`
}

type CreateChartParams struct {
	Title         string `json:"title" jsonschema:"display title, at most 200 characters"`
	MineralTypeID int64  `json:"mineral_type_id" jsonschema:"mineral type of the project"`
	StartStageID  int64  `json:"start_stage_id" jsonschema:"stage the project starts at"`
	QuestionID    *int64 `json:"question_id,omitempty" jsonschema:"question that selects the target stages"`
}

type GetChartParams struct {
	ID string `json:"id" jsonschema:"saved chart ID"`
}

type ListChartsParams struct {
	MineralTypeID *int64 `json:"mineral_type_id,omitempty" jsonschema:"only charts of this mineral type"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of charts"`
	Offset        int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

type DeleteChartParams struct {
	ID string `json:"id" jsonschema:"saved chart ID"`
}

type RebuildChartParams struct {
	ID string `json:"id" jsonschema:"saved chart ID to rebuild against the current catalog"`
}

type GetRecentActivityParams struct {
	ChartID *string `json:"chart_id,omitempty" jsonschema:"only activity of this chart"`
	Type    *string `json:"type,omitempty" jsonschema:"chart_created, chart_rebuilt, chart_deleted or catalog_imported"`
	Limit   int     `json:"limit,omitempty" jsonschema:"maximum number of entries"`
	Offset  int     `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

// StageResponse is a stage without its works.
type StageResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Code           string  `json:"code,omitempty"`
	Order          int     `json:"order"`
	Description    string  `json:"description,omitempty"`
	DurationMonths int     `json:"duration_months"`
	StartMonth     int     `json:"start_month"`
	Color          string  `json:"color"`
	DependsOn      []int64 `json:"depends_on"`
}

type QuestionResponse struct {
	ID             int64   `json:"id"`
	Text           string  `json:"text"`
	Code           string  `json:"code"`
	Description    string  `json:"description,omitempty"`
	TargetStageIDs []int64 `json:"target_stage_ids"`
}

type DeleteChartResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Type      activity.ActivityType `json:"type"`
	ChartID   *string               `json:"chart_id,omitempty"`
	Summary   string                `json:"summary"`
	Details   json.RawMessage       `json:"details,omitempty"`
}

func newStageResponse(st catalog.Stage) StageResponse {
	deps := st.DependsOn
	if deps == nil {
		deps = []int64{}
	}
	return StageResponse{
		ID:             st.ID,
		Name:           st.Name,
		Code:           st.Code,
		Order:          st.Order,
		Description:    st.Description,
		DurationMonths: st.DurationMonths,
		StartMonth:     st.StartMonth,
		Color:          st.Color,
		DependsOn:      deps,
	}
}

func newQuestionResponse(q catalog.Question) QuestionResponse {
	targets := q.TargetStageIDs
	if targets == nil {
		targets = []int64{}
	}
	return QuestionResponse{
		ID:             q.ID,
		Text:           q.Text,
		Code:           q.Code,
		Description:    q.Description,
		TargetStageIDs: targets,
	}
}
