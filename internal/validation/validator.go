package validation

import (
	"strconv"

	"github.com/timesheet-sync-api/internal/excel"
)

// FieldError describes one invalid or missing cell in a worksheet row
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// RowValidator checks worksheet rows before the reconciler absorbs them.
// A row failing validation is skipped and logged, never fatal to the sync.
type RowValidator struct{}

// NewRowValidator creates a new row validator
func NewRowValidator() *RowValidator {
	return &RowValidator{}
}

// ValidateRecordRow validates one record sheet row. Employee id, date, start
// and end are required; the duration columns are optional but must be
// numeric when present.
func (v *RowValidator) ValidateRecordRow(row excel.Row) []FieldError {
	var errors []FieldError

	if row[excel.ColEmployeeID] == "" {
		errors = append(errors, FieldError{Field: excel.ColEmployeeID, Message: "employee id is required"})
	}
	if row[excel.ColDate] == "" {
		errors = append(errors, FieldError{Field: excel.ColDate, Message: "date is required"})
	}
	if row[excel.ColStartTime] == "" {
		errors = append(errors, FieldError{Field: excel.ColStartTime, Message: "start time is required"})
	}
	if row[excel.ColEndTime] == "" {
		errors = append(errors, FieldError{Field: excel.ColEndTime, Message: "end time is required"})
	}

	if raw := row[excel.ColDurationHours]; raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			errors = append(errors, FieldError{
				Field: excel.ColDurationHours, Message: "duration hours must be numeric", Value: raw,
			})
		}
	}
	if raw := row[excel.ColDurationSeconds]; raw != "" {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			errors = append(errors, FieldError{
				Field: excel.ColDurationSeconds, Message: "duration seconds must be numeric", Value: raw,
			})
		}
	}

	return errors
}
