package savedchart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/ganot/roadmap/internal/repository"
	"github.com/google/uuid"
)

// Service builds roadmaps and manages the ones tenants save.
type Service struct {
	charts     ChartRepository
	catalog    CatalogSource
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new saved chart service. activities may be nil.
func NewService(charts ChartRepository, catalog CatalogSource, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		charts:     charts,
		catalog:    catalog,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateRequest describes a chart to build and save.
type CreateRequest struct {
	Title         string
	MineralTypeID int64
	StartStageID  int64
	QuestionID    *int64
}

// Preview builds a roadmap against the current catalog without saving it.
func (s *Service) Preview(ctx context.Context, req chart.Request) (*Preview, error) {
	doc, conflicts, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Preview{Document: doc, Conflicts: conflicts}, nil
}

// Create builds a roadmap and saves it for the tenant.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*SavedChart, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, tenantID, title, chart.Request{
		MineralTypeID: req.MineralTypeID,
		StartStageID:  req.StartStageID,
		QuestionID:    req.QuestionID,
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, tenantID, saved.ID, activity.TypeChartCreated, fmt.Sprintf("created chart %q", saved.Title), "")
	return saved, nil
}

// Get returns a saved chart by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*SavedChart, error) {
	c, err := s.charts.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, fmt.Errorf("getting chart: %w", err)
	}
	return c, nil
}

// List returns the tenant's saved charts, newest first.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]ChartSummary, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	return s.charts.List(ctx, tenantID, opts)
}

// Delete removes a saved chart.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.charts.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChartNotFound
		}
		return fmt.Errorf("deleting chart: %w", err)
	}
	s.logActivity(ctx, tenantID, id, activity.TypeChartDeleted, fmt.Sprintf("deleted chart %s", id), "")
	return nil
}

// Rebuild builds a new saved chart from the parameters of an existing one
// against the current catalog. The existing chart is left untouched.
func (s *Service) Rebuild(ctx context.Context, tenantID, id string) (*SavedChart, error) {
	original, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, tenantID, original.Title, original.Request())
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]string{"rebuilt_from": original.ID})
	s.logActivity(ctx, tenantID, saved.ID, activity.TypeChartRebuilt,
		fmt.Sprintf("rebuilt chart %s as %s", original.ID, saved.ID), string(details))
	return saved, nil
}

func (s *Service) save(ctx context.Context, tenantID, title string, req chart.Request) (*SavedChart, error) {
	doc, conflicts, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := chart.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("validating chart: %w", err)
	}
	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	saved := &SavedChart{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		Title:         title,
		MineralTypeID: req.MineralTypeID,
		StartStageID:  req.StartStageID,
		QuestionID:    req.QuestionID,
		TotalDuration: doc.TotalDuration,
		Chart:         data,
		CreatedAt:     now,
		UpdatedAt:     now,
		Conflicts:     conflicts,
	}
	if err := s.charts.Create(ctx, tenantID, saved); err != nil {
		return nil, fmt.Errorf("creating chart: %w", err)
	}
	return saved, nil
}

func (s *Service) build(ctx context.Context, req chart.Request) (chart.Document, []chart.Conflict, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return chart.Document{}, nil, err
	}
	doc, err := chart.Build(snap, req)
	if err != nil {
		return chart.Document{}, nil, err
	}

	conflicts := chart.OrderConflicts(doc)
	if len(conflicts) > 0 && s.logger != nil {
		s.logger.Warn("chart has dependencies scheduled after their dependents",
			"mineral_type_id", req.MineralTypeID,
			"start_stage_id", req.StartStageID,
			"conflicts", len(conflicts),
		)
	}
	return doc, conflicts, nil
}

func (s *Service) logActivity(ctx context.Context, tenantID, chartID string, typ activity.ActivityType, summary, details string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Append(ctx, tenantID, &activity.ActivityEntry{
		TenantID:     tenantID,
		ChartID:      &chartID,
		ActivityType: typ,
		Summary:      summary,
		Details:      details,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("failed to log activity", "chart_id", chartID, "type", typ, "error", err)
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, MaxTitleLength)
	}
	return title, nil
}
