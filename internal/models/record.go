package models

import (
	"time"
)

// TimeRecord is a completed (or completing) unit of tracked work.
//
// EmployeeName and ProjectName are denormalized copies taken when the record
// is created; they are not kept in sync with the master data afterwards.
// DurationSeconds is derived from EndTime - StartTime at stop time but may be
// edited independently in the workbook, so the two can disagree.
type TimeRecord struct {
	ID              string     `json:"id" db:"id"`
	EmployeeID      string     `json:"employee_id" db:"employee_id"`
	EmployeeName    string     `json:"employee_name" db:"employee_name"`
	ProjectID       *string    `json:"project_id,omitempty" db:"project_id"`
	ProjectName     *string    `json:"project_name,omitempty" db:"project_name"`
	Task            string     `json:"task" db:"task"`
	IsNonProductive bool       `json:"is_non_productive" db:"is_non_productive"`
	StartTime       time.Time  `json:"start_time" db:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty" db:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty" db:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// ActiveTimer is an in-progress time record: no end time yet, at most one
// per employee (enforced by existence check, not a database constraint).
type ActiveTimer struct {
	ID              string    `json:"id" db:"id"`
	EmployeeID      string    `json:"employee_id" db:"employee_id"`
	EmployeeName    string    `json:"employee_name" db:"employee_name"`
	ProjectID       *string   `json:"project_id,omitempty" db:"project_id"`
	ProjectName     *string   `json:"project_name,omitempty" db:"project_name"`
	Task            string    `json:"task" db:"task"`
	IsNonProductive bool      `json:"is_non_productive" db:"is_non_productive"`
	StartTime       time.Time `json:"start_time" db:"start_time"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RecordWindow selects records by the composite pseudo-key used during
// reconciliation: employee, task, partition flag, and a start-time range.
// The range is half-open: [WindowStart, WindowEnd).
type RecordWindow struct {
	EmployeeID      string
	Task            string
	IsNonProductive bool
	WindowStart     time.Time
	WindowEnd       time.Time
}

// StartTimerRequest is the payload for starting a timer
type StartTimerRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required"`
	Mode              string `json:"mode"` // "productive" (default) or "non_productive"
	ProjectID         string `json:"project_id"`
	ProjectName       string `json:"project_name"`
	Task              string `json:"task"`
	NonProductiveTask string `json:"non_productive_task"`
}

// StopTimerRequest is the payload for stopping a timer
type StopTimerRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}
