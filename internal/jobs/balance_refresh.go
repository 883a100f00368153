// Package jobs holds the background jobs run by the billing backend.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/property_billing_app/internal/core/ports/services"
	"github.com/SscSPs/property_billing_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// BalanceRefreshJob recomputes the stored balance of every active occupant.
type BalanceRefreshJob struct {
	balances portssvc.BalanceSvcFacade
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewBalanceRefreshJob creates the job. A zero timeout means no deadline.
func NewBalanceRefreshJob(balances portssvc.BalanceSvcFacade, logger *slog.Logger, timeout time.Duration) *BalanceRefreshJob {
	return &BalanceRefreshJob{
		balances: balances,
		logger:   logger,
		timeout:  timeout,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one refresh. Each run gets its own run ID in the logs.
func (j *BalanceRefreshJob) Run(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}
	logger := j.logger.With(slog.String("job", "balance_refresh"), slog.String("run_id", uuid.NewString()))
	ctx = middleware.WithLogger(ctx, logger)

	started := time.Now()
	logger.Info("Starting balance refresh")
	updated, err := j.balances.RefreshAllBalances(ctx, j.now())
	if err != nil {
		logger.Error("Balance refresh finished with errors",
			slog.Int("updated", updated),
			slog.Duration("took", time.Since(started)),
			slog.String("error", err.Error()))
		return err
	}
	logger.Info("Balance refresh finished", slog.Int("updated", updated), slog.Duration("took", time.Since(started)))
	return nil
}

// NewScheduler returns a UTC cron scheduler with the job registered under spec.
// The caller starts and stops it.
func NewScheduler(spec string, job *BalanceRefreshJob) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		// Errors are already logged by Run.
		_ = job.Run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid balance refresh schedule %q: %w", spec, err)
	}
	return c, nil
}
