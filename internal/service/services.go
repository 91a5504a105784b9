package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/config"
	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/exceltime"
	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/repository"
)

// Sentinel errors surfaced to the HTTP layer
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrTimerAlreadyRunning = errors.New("employee already has an active timer")
	ErrNoActiveTimer       = errors.New("employee has no active timer")
	ErrMissingTask         = errors.New("task is required")
	ErrMissingProject      = errors.New("project is required for productive work")
)

// SyncService reconciles the workbook and the database
type SyncService interface {
	// Run executes one full reconciliation: absorb workbook rows into the
	// database, then republish the database into the workbook. Never
	// returns an error; failures are folded into the result.
	Run(ctx context.Context) *models.SyncResult
}

// TimerService manages the timer lifecycle
type TimerService interface {
	Start(ctx context.Context, req *models.StartTimerRequest) (*models.ActiveTimer, error)
	Stop(ctx context.Context, employeeID string) (*models.TimeRecord, error)
	GetActive(ctx context.Context, employeeID string) (*models.ActiveTimer, error)
	ListActive(ctx context.Context) ([]*models.ActiveTimer, error)
}

// CatalogService reads master data from the workbook
type CatalogService interface {
	Employees(ctx context.Context) ([]models.Employee, error)
	Projects(ctx context.Context) ([]models.Project, error)
	Tasks(ctx context.Context) ([]models.Task, error)
	NonProductiveTasks(ctx context.Context) ([]models.Task, error)
}

// ReportService aggregates records for history and dashboard views
type ReportService interface {
	EmployeeHistory(ctx context.Context, employeeID string, days int) ([]*models.TimeRecord, error)
	DashboardSummaries(ctx context.Context) ([]models.EmployeeSummary, []models.TimerAlert, error)
}

// Services holds all service interfaces
type Services struct {
	Sync    SyncService
	Timer   TimerService
	Catalog CatalogService
	Report  ReportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, sheets excel.Store, codec *exceltime.Codec, cfg *config.Config, log zerolog.Logger) *Services {
	catalogSvc := newCatalogService(sheets, log)
	timerSvc := newTimerService(repos, sheets, codec, catalogSvc, log)
	syncSvc := newSyncService(repos, sheets, codec, log)
	reportSvc := newReportService(repos, catalogSvc, codec, log)

	return &Services{
		Sync:    syncSvc,
		Timer:   timerSvc,
		Catalog: catalogSvc,
		Report:  reportSvc,
	}
}
