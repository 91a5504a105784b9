package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/timesheet-sync-api/internal/database"
	"github.com/timesheet-sync-api/internal/models"
)

// timerRepo is the concrete implementation of ActiveTimerRepository
type timerRepo struct {
	db *database.DB
}

// NewTimerRepo creates a new active timer repository
func NewTimerRepo(db *database.DB) ActiveTimerRepository {
	return &timerRepo{db: db}
}

const timerColumns = `id, employee_id, employee_name, project_id, project_name,
	task, is_non_productive, start_time, created_at`

// Create inserts a new active timer
func (r *timerRepo) Create(ctx context.Context, timer *models.ActiveTimer) error {
	query := `
		INSERT INTO active_timers (id, employee_id, employee_name, project_id, project_name,
			task, is_non_productive, start_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if timer.CreatedAt.IsZero() {
		timer.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query,
		timer.ID, timer.EmployeeID, timer.EmployeeName, timer.ProjectID, timer.ProjectName,
		timer.Task, timer.IsNonProductive, timer.StartTime, timer.CreatedAt,
	)
	return err
}

// GetByEmployee returns the employee's running timer, nil when none exists
func (r *timerRepo) GetByEmployee(ctx context.Context, employeeID string) (*models.ActiveTimer, error) {
	query := `SELECT ` + timerColumns + ` FROM active_timers WHERE employee_id = $1`

	var timer models.ActiveTimer
	err := r.db.QueryRowContext(ctx, query, employeeID).Scan(
		&timer.ID, &timer.EmployeeID, &timer.EmployeeName, &timer.ProjectID, &timer.ProjectName,
		&timer.Task, &timer.IsNonProductive, &timer.StartTime, &timer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

// Exists reports whether the employee has a running timer
func (r *timerRepo) Exists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM active_timers WHERE employee_id = $1)`
	err := r.db.QueryRowContext(ctx, query, employeeID).Scan(&exists)
	return exists, err
}

// List returns all running timers
func (r *timerRepo) List(ctx context.Context) ([]*models.ActiveTimer, error) {
	query := `SELECT ` + timerColumns + ` FROM active_timers ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timers []*models.ActiveTimer
	for rows.Next() {
		var timer models.ActiveTimer
		if err := rows.Scan(
			&timer.ID, &timer.EmployeeID, &timer.EmployeeName, &timer.ProjectID, &timer.ProjectName,
			&timer.Task, &timer.IsNonProductive, &timer.StartTime, &timer.CreatedAt,
		); err != nil {
			return nil, err
		}
		timers = append(timers, &timer)
	}
	return timers, rows.Err()
}

// Delete removes a timer by its identifier
func (r *timerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM active_timers WHERE id = $1`, id)
	return err
}
