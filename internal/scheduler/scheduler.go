// Package scheduler runs the recurring background jobs of the engine. The
// only job today is the daily NAV sweep.
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/solasterfm/fund-engine/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron       *cron.Cron
	navService *service.NAVService
}

// New creates a Scheduler with the NAV sweep registered on the given cron
// expression. An empty schedule disables the sweep.
func New(navService *service.NAVService, navSweepSchedule string) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(),
		navService: navService,
	}

	if navSweepSchedule != "" {
		if _, err := s.cron.AddFunc(navSweepSchedule, s.runNavSweep); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run starts the cron loop and blocks until the context is cancelled. Jobs
// running at cancellation time finish before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}

func (s *Scheduler) runNavSweep() {
	validated, err := s.navService.Sweep(context.Background())
	if err != nil {
		log.Printf("nav sweep failed: %v", err)
		return
	}
	log.Printf("nav sweep validated %d quote(s)", validated)
}
