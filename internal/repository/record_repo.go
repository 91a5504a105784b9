package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/timesheet-sync-api/internal/database"
	"github.com/timesheet-sync-api/internal/models"
)

// recordRepo is the concrete implementation of TimeRecordRepository
type recordRepo struct {
	db *database.DB
}

// NewRecordRepo creates a new time record repository
func NewRecordRepo(db *database.DB) TimeRecordRepository {
	return &recordRepo{db: db}
}

const recordColumns = `id, employee_id, employee_name, project_id, project_name,
	task, is_non_productive, start_time, end_time, duration_seconds, created_at`

// Create inserts a new time record
func (r *recordRepo) Create(ctx context.Context, rec *models.TimeRecord) error {
	query := `
		INSERT INTO time_records (id, employee_id, employee_name, project_id, project_name,
			task, is_non_productive, start_time, end_time, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.EmployeeID, rec.EmployeeName, rec.ProjectID, rec.ProjectName,
		rec.Task, rec.IsNonProductive, rec.StartTime, rec.EndTime, rec.DurationSeconds,
		rec.CreatedAt,
	)
	return err
}

// Update overwrites the mutable fields of an existing record
func (r *recordRepo) Update(ctx context.Context, rec *models.TimeRecord) error {
	query := `
		UPDATE time_records SET
			employee_name = $2,
			project_id = $3,
			project_name = $4,
			start_time = $5,
			end_time = $6,
			duration_seconds = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.EmployeeName, rec.ProjectID, rec.ProjectName,
		rec.StartTime, rec.EndTime, rec.DurationSeconds,
	)
	return err
}

// GetByID retrieves a record by its identifier
func (r *recordRepo) GetByID(ctx context.Context, id string) (*models.TimeRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM time_records WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// FindInWindow returns records matching the composite pseudo-key with a
// start time inside the half-open window
func (r *recordRepo) FindInWindow(ctx context.Context, window models.RecordWindow) ([]*models.TimeRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM time_records
		WHERE employee_id = $1
		  AND task = $2
		  AND is_non_productive = $3
		  AND start_time >= $4
		  AND start_time < $5
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query,
		window.EmployeeID, window.Task, window.IsNonProductive,
		window.WindowStart, window.WindowEnd,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListCompleted returns all records with a non-null end time
func (r *recordRepo) ListCompleted(ctx context.Context) ([]*models.TimeRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM time_records
		WHERE end_time IS NOT NULL
		ORDER BY start_time
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByEmployeeSince returns one employee's records starting at or after
// the given instant
func (r *recordRepo) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]*models.TimeRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM time_records
		WHERE employee_id = $1 AND start_time >= $2
		ORDER BY start_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, employeeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListSince returns all records starting at or after the given instant
func (r *recordRepo) ListSince(ctx context.Context, since time.Time) ([]*models.TimeRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM time_records
		WHERE start_time >= $1
		ORDER BY start_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Count returns the total number of records
func (r *recordRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_records`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*models.TimeRecord, error) {
	var rec models.TimeRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.ProjectID, &rec.ProjectName,
		&rec.Task, &rec.IsNonProductive, &rec.StartTime, &rec.EndTime, &rec.DurationSeconds,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]*models.TimeRecord, error) {
	var records []*models.TimeRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
