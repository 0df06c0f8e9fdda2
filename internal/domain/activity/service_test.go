package activity_test

import (
	"context"
	"testing"

	"github.com/ganot/roadmap/internal/domain/activity"
	"github.com/ganot/roadmap/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"
	chartID := "chart1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		ChartID:      &chartID,
		ActivityType: activity.TypeChartCreated,
		Summary:      "created",
	}

	repo.On("Append", ctx, tenantID, entry).Return(nil)
	repo.On("List", ctx, tenantID, activity.ListActivityOptions{ChartID: &chartID, Limit: 50}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, tenantID, entry))
	require.False(t, entry.CreatedAt.IsZero())
	require.Equal(t, tenantID, entry.TenantID)

	list, err := svc.GetRecentActivity(ctx, tenantID, activity.ListActivityOptions{ChartID: &chartID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	require.ErrorIs(t, svc.LogActivity(ctx, "tenant1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(ctx, "tenant1", &activity.ActivityEntry{ActivityType: "record_created"}), activity.ErrInvalidInput)

	bogus := activity.ActivityType("bogus")
	_, err := svc.GetRecentActivity(ctx, "tenant1", activity.ListActivityOptions{ActivityType: &bogus})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	_, err = svc.GetRecentActivity(ctx, "tenant1", activity.ListActivityOptions{Offset: -1})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityService_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, "tenant1", activity.ListActivityOptions{Limit: 500}).Return([]activity.ActivityEntry{}, nil)

	svc := activity.NewService(repo, nil)
	_, err := svc.GetRecentActivity(ctx, "tenant1", activity.ListActivityOptions{Limit: 10000})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
