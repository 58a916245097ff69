package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/repositories"
	"github.com/rsystemautomacao/agrodrones/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler manages recurring background work.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	dashboardSvc services.DashboardService
	companyRepo  repositories.CompanyRepository
	jobs         map[string]gocron.Job
}

func NewJobScheduler(dashboardSvc services.DashboardService, companyRepo repositories.CompanyRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		companyRepo:  companyRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboardStats, context.Background()),
		gocron.WithName("dashboard-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard stats job: %v", err)
	} else {
		js.jobs["dashboard-stats"] = statsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshDashboardStats recomputes the cached dashboard numbers for every
// company so interactive loads hit warm cache.
func (js *JobScheduler) refreshDashboardStats(ctx context.Context) error {
	companyIDs, err := js.companyRepo.ListIDs(ctx)
	if err != nil {
		log.Printf("Failed to list companies for stats refresh: %v", err)
		return err
	}

	// Bounded fan-out across tenants.
	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, id := range companyIDs {
		wg.Add(1)
		go func(companyID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := js.dashboardSvc.RefreshStats(ctx, companyID); err != nil {
				log.Printf("Failed to refresh dashboard stats for company %s: %v", companyID.String(), err)
			}
		}(id)
	}

	wg.Wait()
	log.Printf("Completed dashboard stats refresh for %d companies", len(companyIDs))
	return nil
}

