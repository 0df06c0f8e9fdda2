package mocks

import (
	"context"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/savedchart"
	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock for catalog.Repository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListMineralTypes(ctx context.Context) ([]catalog.MineralType, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]catalog.MineralType); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) GetMineralType(ctx context.Context, id int64) (*catalog.MineralType, error) {
	args := m.Called(ctx, id)
	if mt, ok := args.Get(0).(*catalog.MineralType); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListStages(ctx context.Context, mineralTypeID int64) ([]catalog.Stage, error) {
	args := m.Called(ctx, mineralTypeID)
	if list, ok := args.Get(0).([]catalog.Stage); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) GetStage(ctx context.Context, id int64) (*catalog.Stage, error) {
	args := m.Called(ctx, id)
	if st, ok := args.Get(0).(*catalog.Stage); ok {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListWorks(ctx context.Context, stageID int64) ([]catalog.Work, error) {
	args := m.Called(ctx, stageID)
	if list, ok := args.Get(0).([]catalog.Work); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) ListQuestions(ctx context.Context, mineralTypeID int64) ([]catalog.Question, error) {
	args := m.Called(ctx, mineralTypeID)
	if list, ok := args.Get(0).([]catalog.Question); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) LoadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*catalog.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) Import(ctx context.Context, seed catalog.Seed) error {
	args := m.Called(ctx, seed)
	return args.Error(0)
}

// ChartRepository is a mock for savedchart.ChartRepository.
type ChartRepository struct {
	mock.Mock
}

func (m *ChartRepository) Create(ctx context.Context, tenantID string, c *savedchart.SavedChart) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *ChartRepository) Get(ctx context.Context, tenantID, id string) (*savedchart.SavedChart, error) {
	args := m.Called(ctx, tenantID, id)
	if c, ok := args.Get(0).(*savedchart.SavedChart); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChartRepository) List(ctx context.Context, tenantID string, opts savedchart.ListOptions) ([]savedchart.ChartSummary, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]savedchart.ChartSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChartRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Append(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
