package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/domain/catalog"
	"github.com/ganot/roadmap/internal/domain/chart"
	"github.com/ganot/roadmap/internal/domain/savedchart"
	"github.com/ganot/roadmap/internal/seed"
	"github.com/ganot/roadmap/internal/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "../../data/catalog.yaml"

type testEnv struct {
	db          *sqlite.DB
	catalogSvc  *catalog.Service
	chartSvc    *savedchart.Service
	activitySvc *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	catalogRepo := sqlite.NewCatalogRepository(db)
	chartRepo := sqlite.NewChartRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	catalogSvc := catalog.NewService(catalogRepo, nil)
	env := &testEnv{
		db:          db,
		catalogSvc:  catalogSvc,
		chartSvc:    savedchart.NewService(chartRepo, catalogSvc, activityRepo, nil),
		activitySvc: activity.NewService(activityRepo, nil),
	}

	s, err := seed.Load(sampleCatalog)
	require.NoError(t, err)
	require.NoError(t, catalogSvc.Import(context.Background(), s))

	return env
}

func stageStarts(doc chart.Document) map[int64]int {
	starts := make(map[int64]int, len(doc.Stages))
	for _, st := range doc.Stages {
		starts[st.ID] = st.Start
	}
	return starts
}

func TestIntegration_FullCoalRoadmap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	preview, err := env.chartSvc.Preview(ctx, chart.Request{MineralTypeID: 1, StartStageID: 101})
	require.NoError(t, err)
	doc := preview.Document

	assert.Equal(t, map[int64]int{101: 0, 102: 6, 103: 32, 104: 40, 105: 52, 106: 82}, stageStarts(doc))
	assert.Equal(t, 94, doc.TotalDuration)
	assert.Empty(t, preview.Conflicts)

	// Exploration runs 26 months because laboratory analysis ends at 20 + 6.
	exploration := doc.Stages[doc.StageIndex(102)]
	assert.Equal(t, 26, exploration.Duration)
	lab := exploration.Works[2]
	assert.Equal(t, int64(1005), lab.ID)
	assert.Equal(t, 26, lab.StartGlobal)
	assert.Equal(t, 20, lab.StartInStage)

	operations := doc.Stages[doc.StageIndex(106)]
	assert.Equal(t, []int64{105, 104}, operations.Dependencies)
	assert.Equal(t, []chart.WorkEntry{}, operations.Works)

	require.NoError(t, chart.ValidateDocument(doc))
}

func TestIntegration_QuestionNarrowsChart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	licenceOnly := int64(4)

	preview, err := env.chartSvc.Preview(ctx, chart.Request{MineralTypeID: 2, StartStageID: 201, QuestionID: &licenceOnly})
	require.NoError(t, err)

	// The question targets a coal stage only, so the gold chart is just its start.
	require.Len(t, preview.Document.Stages, 1)
	assert.Equal(t, int64(201), preview.Document.Stages[0].ID)
	assert.Equal(t, 12, preview.Document.TotalDuration)
}

func TestIntegration_SavedChartLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tenantID := "tenant1"

	created, err := env.chartSvc.Create(ctx, tenantID, savedchart.CreateRequest{
		Title:         "Coal from reserves",
		MineralTypeID: 1,
		StartStageID:  103,
	})
	require.NoError(t, err)
	assert.Equal(t, 62, created.TotalDuration)

	stored, err := env.chartSvc.Get(ctx, tenantID, created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(created.Chart), string(stored.Chart))

	// The catalog changes after the chart was saved.
	s, err := seed.Load(sampleCatalog)
	require.NoError(t, err)
	for i := range s.Stages {
		if s.Stages[i].ID == 106 {
			s.Stages[i].DurationMonths = 24
		}
	}
	require.NoError(t, env.catalogSvc.Import(ctx, s))

	again, err := env.chartSvc.Get(ctx, tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 62, again.TotalDuration)
	assert.JSONEq(t, string(created.Chart), string(again.Chart))

	rebuilt, err := env.chartSvc.Rebuild(ctx, tenantID, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, rebuilt.ID)
	assert.Equal(t, created.Title, rebuilt.Title)
	assert.Equal(t, 74, rebuilt.TotalDuration)

	list, err := env.chartSvc.List(ctx, tenantID, savedchart.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, rebuilt.ID, list[0].ID)
	assert.Equal(t, created.ID, list[1].ID)

	require.NoError(t, env.chartSvc.Delete(ctx, tenantID, created.ID))
	_, err = env.chartSvc.Get(ctx, tenantID, created.ID)
	require.ErrorIs(t, err, savedchart.ErrChartNotFound)
	require.ErrorIs(t, env.chartSvc.Delete(ctx, tenantID, created.ID), savedchart.ErrChartNotFound)

	entries, err := env.activitySvc.GetRecentActivity(ctx, tenantID, activity.ListActivityOptions{})
	require.NoError(t, err)
	types := make([]activity.ActivityType, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.ActivityType)
	}
	assert.Equal(t, []activity.ActivityType{
		activity.TypeChartDeleted,
		activity.TypeChartRebuilt,
		activity.TypeChartCreated,
	}, types)

	rebuiltType := activity.TypeChartRebuilt
	rebuilds, err := env.activitySvc.GetRecentActivity(ctx, tenantID, activity.ListActivityOptions{ActivityType: &rebuiltType})
	require.NoError(t, err)
	require.Len(t, rebuilds, 1)
	assert.JSONEq(t, fmt.Sprintf(`{"rebuilt_from":%q}`, created.ID), rebuilds[0].Details)
}

func TestIntegration_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.chartSvc.Create(ctx, "tenant1", savedchart.CreateRequest{
		Title:         "Gold",
		MineralTypeID: 2,
		StartStageID:  201,
	})
	require.NoError(t, err)

	_, err = env.chartSvc.Get(ctx, "tenant2", created.ID)
	require.ErrorIs(t, err, savedchart.ErrChartNotFound)
	_, err = env.chartSvc.Rebuild(ctx, "tenant2", created.ID)
	require.ErrorIs(t, err, savedchart.ErrChartNotFound)
	require.ErrorIs(t, env.chartSvc.Delete(ctx, "tenant2", created.ID), savedchart.ErrChartNotFound)

	list, err := env.chartSvc.List(ctx, "tenant2", savedchart.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)

	entries, err := env.activitySvc.GetRecentActivity(ctx, "tenant2", activity.ListActivityOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIntegration_ResolutionErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	missing := int64(99)

	_, err := env.chartSvc.Preview(ctx, chart.Request{MineralTypeID: 9, StartStageID: 101})
	require.ErrorIs(t, err, catalog.ErrMineralTypeNotFound)

	// Stage 201 exists but belongs to gold.
	_, err = env.chartSvc.Preview(ctx, chart.Request{MineralTypeID: 1, StartStageID: 201})
	require.ErrorIs(t, err, catalog.ErrStageNotFound)

	_, err = env.chartSvc.Preview(ctx, chart.Request{MineralTypeID: 1, StartStageID: 101, QuestionID: &missing})
	require.ErrorIs(t, err, catalog.ErrQuestionNotFound)

	_, err = env.catalogSvc.ListStages(ctx, 9)
	require.ErrorIs(t, err, catalog.ErrMineralTypeNotFound)
}
