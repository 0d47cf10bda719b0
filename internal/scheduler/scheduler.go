// Package scheduler runs order processing passes on a cron schedule
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/nkiryanov/orderprocessor/internal/logger"
	"github.com/nkiryanov/orderprocessor/internal/models"
)

// Standard 5 field expression, optional leading seconds field and descriptors like '@every 1m'
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type processor interface {
	ProcessOrders(ctx context.Context, userID int64) ([]models.Order, error)
}

type Scheduler struct {
	schedule cron.Schedule
	userIDs  []int64

	processor processor
	logger    logger.Logger
}

// New returns error if schedule could not be parsed
func New(expr string, userIDs []int64, p processor, l logger.Logger) (*Scheduler, error) {
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	return &Scheduler{
		schedule:  schedule,
		userIDs:   userIDs,
		processor: p,
		logger:    l.With("component", "scheduler"),
	}, nil
}

// Run starts the scheduler until ctx is done
// Returned channel is closed when the scheduler stopped and running pass finished
func (s *Scheduler) Run(ctx context.Context) <-chan struct{} {
	stopped := make(chan struct{})

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() { s.runOnce(ctx) }))

	c.Start()
	s.logger.Info("Scheduler started", "users", len(s.userIDs))

	go func() {
		defer close(stopped)

		<-ctx.Done()
		<-c.Stop().Done()
		s.logger.Info("Scheduler stopped")
	}()

	return stopped
}

// Process orders of every configured user, one user after another
// Failed pass does not stop passes of other users
func (s *Scheduler) runOnce(ctx context.Context) {
	for _, userID := range s.userIDs {
		if ctx.Err() != nil {
			return
		}

		orders, err := s.processor.ProcessOrders(ctx, userID)
		if err != nil {
			s.logger.Error("Scheduled pass failed", "user_id", userID, "error", err)
			continue
		}

		s.logger.Debug("Scheduled pass done", "user_id", userID, "orders", len(orders))
	}
}
