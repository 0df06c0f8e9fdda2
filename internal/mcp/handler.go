package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/ganot/roadmap/internal/domain/savedchart"
)

// CatalogService defines reference data operations needed by MCP.
type CatalogService interface {
	ListMineralTypes(ctx context.Context) ([]catalog.MineralType, error)
	ListStages(ctx context.Context, mineralTypeID int64) ([]catalog.Stage, error)
	ListQuestions(ctx context.Context, mineralTypeID int64) ([]catalog.Question, error)
	ListWorks(ctx context.Context, stageID int64) ([]catalog.Work, error)
}

// ChartService defines chart operations needed by MCP.
type ChartService interface {
	Preview(ctx context.Context, req chart.Request) (*savedchart.Preview, error)
	Create(ctx context.Context, tenantID string, req savedchart.CreateRequest) (*savedchart.SavedChart, error)
	Get(ctx context.Context, tenantID, id string) (*savedchart.SavedChart, error)
	List(ctx context.Context, tenantID string, opts savedchart.ListOptions) ([]savedchart.ChartSummary, error)
	Delete(ctx context.Context, tenantID, id string) error
	Rebuild(ctx context.Context, tenantID, id string) (*savedchart.SavedChart, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Handler dispatches MCP commands.
type Handler struct {
	catalog  CatalogService
	charts   ChartService
	activity ActivityService
}

// NewHandler creates a new MCP handler.
func NewHandler(catalogSvc CatalogService, charts ChartService, activitySvc ActivityService) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		charts:   charts,
		activity: activitySvc,
	}
}

// Handle dispatches MCP requests to domain services. Domain failures are
// returned as *APIError when they have a code.
func (h *Handler) Handle(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, tenantID, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_mineral_types":
		types, err := h.catalog.ListMineralTypes(ctx)
		if err != nil {
			return nil, err
		}
		if types == nil {
			types = []catalog.MineralType{}
		}
		return types, nil
	case "list_stages":
		var req ListStagesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		stages, err := h.catalog.ListStages(ctx, req.MineralTypeID)
		if err != nil {
			return nil, err
		}
		resp := make([]StageResponse, 0, len(stages))
		for _, st := range stages {
			resp = append(resp, newStageResponse(st))
		}
		return resp, nil
	case "list_questions":
		var req ListQuestionsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		questions, err := h.catalog.ListQuestions(ctx, req.MineralTypeID)
		if err != nil {
			return nil, err
		}
		resp := make([]QuestionResponse, 0, len(questions))
		for _, q := range questions {
			resp = append(resp, newQuestionResponse(q))
		}
		return resp, nil
	case "list_works":
		var req ListWorksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		works, err := h.catalog.ListWorks(ctx, req.StageID)
		if err != nil {
			return nil, err
		}
		if works == nil {
			works = []catalog.Work{}
		}
		return works, nil
	case "preview_chart":
		var req PreviewChartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.charts.Preview(ctx, chart.Request{
			MineralTypeID: req.MineralTypeID,
			StartStageID:  req.StartStageID,
			QuestionID:    req.QuestionID,
		})
	case "create_chart":
		var req CreateChartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.charts.Create(ctx, tenantID, savedchart.CreateRequest{
			Title:         req.Title,
			MineralTypeID: req.MineralTypeID,
			StartStageID:  req.StartStageID,
			QuestionID:    req.QuestionID,
		})
	case "get_chart":
		var req GetChartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.charts.Get(ctx, tenantID, req.ID)
	case "list_charts":
		var req ListChartsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.charts.List(ctx, tenantID, savedchart.ListOptions{
			MineralTypeID: req.MineralTypeID,
			Limit:         req.Limit,
			Offset:        req.Offset,
		})
	case "delete_chart":
		var req DeleteChartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.charts.Delete(ctx, tenantID, req.ID); err != nil {
			return nil, err
		}
		return DeleteChartResponse{ID: req.ID, Deleted: true}, nil
	case "rebuild_chart":
		var req RebuildChartParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.charts.Rebuild(ctx, tenantID, req.ID)
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListActivityOptions{
			ChartID: req.ChartID,
			Limit:   req.Limit,
			Offset:  req.Offset,
		}
		if req.Type != nil {
			typ := activity.ActivityType(*req.Type)
			opts.ActivityType = &typ
		}
		entries, err := h.activity.GetRecentActivity(ctx, tenantID, opts)
		if err != nil {
			return nil, err
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp: entry.CreatedAt,
				Type:      entry.ActivityType,
				ChartID:   entry.ChartID,
				Summary:   entry.Summary,
				Details:   detailsJSON(entry.Details),
			})
		}
		return resp, nil
	default:
		return nil, unknownMethod(method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(fmt.Errorf("decoding params: %w", err))
	}
	return nil
}

func detailsJSON(details string) json.RawMessage {
	if details == "" {
		return nil
	}
	if json.Valid([]byte(details)) {
		return json.RawMessage(details)
	}
	quoted, _ := json.Marshal(details)
	return quoted
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
