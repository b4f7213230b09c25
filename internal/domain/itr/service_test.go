package itr_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/repository"
	"github.com/rpggio/precomm/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestITRService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ITRRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := itr.NewService(repo, nil)
	rec, err := svc.Create(ctx, itr.CreateRequest{
		ActivityID:    "a1",
		Description:   "Loop check",
		QuantityTotal: 10,
		QuantityDone:  2,
		DueDate:       time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.DueDate)
	repo.AssertExpectations(t)
}

func TestITRService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := itr.NewService(&mocks.ITRRepository{}, nil)

	cases := []struct {
		name string
		req  itr.CreateRequest
		err  error
	}{
		{"missing activity", itr.CreateRequest{Description: "x", QuantityTotal: 1}, itr.ErrInvalidInput},
		{"missing description", itr.CreateRequest{ActivityID: "a1", QuantityTotal: 1}, itr.ErrInvalidInput},
		{"zero total", itr.CreateRequest{ActivityID: "a1", Description: "x"}, itr.ErrInvalidQuantity},
		{"done above total", itr.CreateRequest{ActivityID: "a1", Description: "x", QuantityTotal: 2, QuantityDone: 3}, itr.ErrInvalidQuantity},
		{"negative done", itr.CreateRequest{ActivityID: "a1", Description: "x", QuantityTotal: 2, QuantityDone: -1}, itr.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestITRService_CreateUnknownActivity(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ITRRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := itr.NewService(repo, nil)
	_, err := svc.Create(ctx, itr.CreateRequest{ActivityID: "ghost", Description: "x", QuantityTotal: 1})
	require.ErrorIs(t, err, itr.ErrActivityNotFound)
}

func TestITRService_RecordProgress(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ITRRepository{}
	repo.On("Get", ctx, "i1").Return(&itr.ITR{ID: "i1", ActivityID: "a1", Description: "x", QuantityTotal: 4, QuantityDone: 1}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(rec *itr.ITR) bool { return rec.QuantityDone == 4 })).Return(nil)

	svc := itr.NewService(repo, nil)
	updated, err := svc.RecordProgress(ctx, "i1", 4)
	require.NoError(t, err)
	require.Equal(t, 4, updated.QuantityDone)

	_, err = svc.RecordProgress(ctx, "i1", 5)
	require.ErrorIs(t, err, itr.ErrInvalidQuantity)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestITRService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ITRRepository{}
	repo.On("Get", ctx, "nope").Return((*itr.ITR)(nil), repository.ErrNotFound)

	svc := itr.NewService(repo, nil)
	_, err := svc.SetMCC(ctx, "nope", true)
	require.ErrorIs(t, err, itr.ErrITRNotFound)
}
