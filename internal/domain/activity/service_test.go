package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/repository"
	"github.com/rpggio/precomm/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestActivityService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := activity.NewService(repo, nil, nil)
	act, err := svc.Create(ctx, activity.CreateRequest{
		ProjectID: "p1",
		Name:      "Flush lines",
		System:    " Cooling ",
		StartDate: date(2024, 1, 1).Add(13 * time.Hour),
		EndDate:   date(2024, 1, 11),
	})
	require.NoError(t, err)
	require.NotEmpty(t, act.ID)
	require.Equal(t, "Cooling", act.System)
	require.Equal(t, date(2024, 1, 1), act.StartDate)
	require.Equal(t, 10, act.DurationDays())
	repo.AssertExpectations(t)
}

func TestActivityService_CreateRejectsReversedDates(t *testing.T) {
	ctx := context.Background()

	svc := activity.NewService(&mocks.ActivityRepository{}, nil, nil)
	_, err := svc.Create(ctx, activity.CreateRequest{
		ProjectID: "p1",
		Name:      "Backwards",
		StartDate: date(2024, 2, 1),
		EndDate:   date(2024, 1, 1),
	})
	require.ErrorIs(t, err, activity.ErrInvalidDates)

	_, err = svc.Create(ctx, activity.CreateRequest{ProjectID: "p1", Name: "No dates"})
	require.ErrorIs(t, err, activity.ErrInvalidDates)

	_, err = svc.Create(ctx, activity.CreateRequest{Name: "No project", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}

func TestActivityService_CreateUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := activity.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, activity.CreateRequest{
		ProjectID: "ghost",
		Name:      "Orphan",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 1),
	})
	require.ErrorIs(t, err, activity.ErrProjectNotFound)
}

func TestActivityService_RescheduleRecomputesDuration(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("Get", ctx, "a1").Return(&activity.Activity{
		ID:        "a1",
		ProjectID: "p1",
		Name:      "Hydrotest",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 5),
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := activity.NewService(repo, nil, nil)
	updated, err := svc.Reschedule(ctx, "a1", date(2024, 1, 3), date(2024, 1, 3))
	require.NoError(t, err)
	require.Equal(t, 1, updated.DurationDays())

	_, err = svc.Reschedule(ctx, "a1", date(2024, 1, 9), date(2024, 1, 3))
	require.ErrorIs(t, err, activity.ErrInvalidDates)
}

func TestActivity_DurationInvalidDates(t *testing.T) {
	act := activity.Activity{StartDate: date(2024, 1, 1)}
	require.False(t, act.HasValidDates())
	require.Equal(t, 0, act.DurationDays())
}

func TestActivityService_Search(t *testing.T) {
	ctx := context.Background()

	search := &mocks.SearchRepository{}
	search.On("Search", ctx, "pump", activity.SearchOptions{Limit: 5}).Return([]activity.SearchResult{{ActivityID: "a1", Name: "Pump run-in"}}, nil)

	svc := activity.NewService(&mocks.ActivityRepository{}, search, nil)
	hits, err := svc.Search(ctx, "pump", activity.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	_, err = svc.Search(ctx, "  ", activity.SearchOptions{})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	_, err = activity.NewService(&mocks.ActivityRepository{}, nil, nil).Search(ctx, "pump", activity.SearchOptions{})
	require.Error(t, err)
}
