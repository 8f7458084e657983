package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the spoilage sweep on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler registers sweeper to run every interval, starting
// immediately once Start is called.
func NewScheduler(sweeper *Sweeper, interval time.Duration) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { sweeper.Run() }),
		gocron.WithName("spoilage-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		s.Shutdown()
		return nil, fmt.Errorf("creating spoilage sweep job: %w", err)
	}

	return &Scheduler{scheduler: s}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	slog.Info("starting background jobs")
	s.scheduler.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() error {
	slog.Info("stopping background jobs")
	return s.scheduler.Shutdown()
}
