package repository

import (
	"context"
	"time"

	"github.com/timesheet-sync-api/internal/database"
	"github.com/timesheet-sync-api/internal/models"
)

// TimeRecordRepository defines the interface for historical time records
type TimeRecordRepository interface {
	Create(ctx context.Context, rec *models.TimeRecord) error
	Update(ctx context.Context, rec *models.TimeRecord) error
	GetByID(ctx context.Context, id string) (*models.TimeRecord, error)
	// FindInWindow returns records matching the reconciler's composite
	// pseudo-key, ordered by creation time.
	FindInWindow(ctx context.Context, window models.RecordWindow) ([]*models.TimeRecord, error)
	// ListCompleted returns all records with a non-null end time, ordered
	// by start time. Active timers are never included.
	ListCompleted(ctx context.Context) ([]*models.TimeRecord, error)
	ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]*models.TimeRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.TimeRecord, error)
	Count(ctx context.Context) (int, error)
}

// ActiveTimerRepository defines the interface for running timers
type ActiveTimerRepository interface {
	Create(ctx context.Context, timer *models.ActiveTimer) error
	// GetByEmployee returns the employee's running timer, or nil when none
	// is active.
	GetByEmployee(ctx context.Context, employeeID string) (*models.ActiveTimer, error)
	Exists(ctx context.Context, employeeID string) (bool, error)
	List(ctx context.Context) ([]*models.ActiveTimer, error)
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Record TimeRecordRepository
	Timer  ActiveTimerRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Record: NewRecordRepo(db),
		Timer:  NewTimerRepo(db),
	}
}
