package background

import (
	"context"
	"log"
	"sync"
	"time"

	"stockcast/internal/analytics"
	"stockcast/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const companyPageSize = 1000

// JobScheduler runs the periodic maintenance jobs: metrics snapshot refresh
// and the safety-stock alert sweep.
type JobScheduler struct {
	scheduler        gocron.Scheduler
	analyticsSvc     *analytics.Service
	companyRepo      repositories.CompanyRepository
	retailCenterRepo repositories.RetailCenterRepository
	jobs             map[string]gocron.Job
	mu               sync.RWMutex
}

func NewJobScheduler(analyticsSvc *analytics.Service, companyRepo repositories.CompanyRepository, retailCenterRepo repositories.RetailCenterRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:        scheduler,
		analyticsSvc:     analyticsSvc,
		companyRepo:      companyRepo,
		retailCenterRepo: retailCenterRepo,
		jobs:             make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	metricsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshMetricsSnapshots, context.Background()),
		gocron.WithName("metrics-snapshot-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create metrics snapshot job: %v", err)
	} else {
		js.jobs["metrics-snapshot-refresh"] = metricsJob
	}

	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.sweepSafetyStock, context.Background()),
		gocron.WithName("safety-stock-sweep"),
	)
	if err != nil {
		log.Printf("Failed to create safety stock sweep job: %v", err)
	} else {
		js.jobs["safety-stock-sweep"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshMetricsSnapshots recomputes and caches the aggregate metrics for
// every company. Companies refresh in parallel under a small semaphore so a
// large tenant population cannot saturate the pool.
func (js *JobScheduler) refreshMetricsSnapshots(ctx context.Context) error {
	log.Printf("Starting metrics snapshot refresh")

	companyIDs, err := js.companyRepo.ListIDs(ctx, companyPageSize, 0)
	if err != nil {
		log.Printf("Failed to list companies for metrics refresh: %v", err)
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup
	for _, id := range companyIDs {
		wg.Add(1)
		go func(companyID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := js.analyticsSvc.RefreshSnapshot(ctx, companyID); err != nil {
				log.Printf("Failed to refresh metrics snapshot for company %s: %v", companyID.String(), err)
			}
		}(id)
	}
	wg.Wait()

	log.Printf("Completed metrics snapshot refresh for %d companies", len(companyIDs))
	return nil
}

// sweepSafetyStock logs an alert for every active center whose current stock
// sits below its safety floor.
func (js *JobScheduler) sweepSafetyStock(ctx context.Context) error {
	log.Printf("Starting safety stock sweep")

	companyIDs, err := js.companyRepo.ListIDs(ctx, companyPageSize, 0)
	if err != nil {
		log.Printf("Failed to list companies for safety stock sweep: %v", err)
		return err
	}

	for _, companyID := range companyIDs {
		centers, err := js.retailCenterRepo.ListBelowSafetyStock(ctx, companyID)
		if err != nil {
			log.Printf("Failed to check safety stock for company %s: %v", companyID.String(), err)
			continue
		}
		for _, center := range centers {
			log.Printf("ALERT: retail center %s (%s) stock %d below safety stock %d",
				center.Name, center.ID.String(), center.CurrentStock, center.SafetyStock)
		}
	}

	log.Printf("Completed safety stock sweep")
	return nil
}

// AddJob registers a custom periodic job.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	js.jobs[name] = job
	return nil
}

// JobStatus reports the registered job names.
func (js *JobScheduler) JobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}
