package background

import (
	"context"
	"log"
	"time"

	"stockmap/internal/analytics"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs periodic maintenance: refreshing the cached layout
// stats so dashboard reads stay warm between mutations.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
}

// NewJobScheduler creates a scheduler with the stats refresh job registered.
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshLayoutStats),
		gocron.WithName("layout-stats-refresh"),
	)
	return err
}

func (js *JobScheduler) refreshLayoutStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := js.analyticsSvc.Refresh(ctx); err != nil {
		log.Printf("layout stats refresh failed: %v", err)
	}
}

// Start begins running registered jobs.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (js *JobScheduler) Stop() {
	if err := js.scheduler.Shutdown(); err != nil {
		log.Printf("job scheduler shutdown: %v", err)
	}
}
