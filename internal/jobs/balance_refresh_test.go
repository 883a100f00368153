package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/property_billing_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBalanceService struct {
	mock.Mock
}

func (m *mockBalanceService) RecalculateOccupantBalance(ctx context.Context, occupantID string, asOf time.Time) (*domain.Occupant, error) {
	args := m.Called(ctx, occupantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Occupant), args.Error(1)
}

func (m *mockBalanceService) RefreshAllBalances(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBalanceRefreshJob_Run(t *testing.T) {
	now := time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)

	t.Run("passes the current time and a deadline", func(t *testing.T) {
		svc := new(mockBalanceService)
		svc.On("RefreshAllBalances", mock.MatchedBy(func(ctx context.Context) bool {
			_, hasDeadline := ctx.Deadline()
			return hasDeadline
		}), now).Return(12, nil).Once()

		job := NewBalanceRefreshJob(svc, discardLogger(), time.Minute)
		job.now = func() time.Time { return now }

		require.NoError(t, job.Run(context.Background()))
		svc.AssertExpectations(t)
	})

	t.Run("returns service errors", func(t *testing.T) {
		svc := new(mockBalanceService)
		svc.On("RefreshAllBalances", mock.Anything, now).Return(3, errors.New("occupant occ-9: boom")).Once()

		job := NewBalanceRefreshJob(svc, discardLogger(), 0)
		job.now = func() time.Time { return now }

		err := job.Run(context.Background())
		assert.EqualError(t, err, "occupant occ-9: boom")
	})
}

func TestNewScheduler(t *testing.T) {
	job := NewBalanceRefreshJob(new(mockBalanceService), discardLogger(), time.Minute)

	c, err := NewScheduler("0 2 * * *", job)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = NewScheduler("every night", job)
	assert.ErrorContains(t, err, "invalid balance refresh schedule")
}
