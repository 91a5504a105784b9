package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/exceltime"
	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/repository"
)

// timerService is the concrete implementation of TimerService
type timerService struct {
	repos   *repository.Repositories
	sheets  excel.Store
	codec   *exceltime.Codec
	catalog CatalogService
	log     zerolog.Logger
}

// newTimerService creates a new TimerService
func newTimerService(repos *repository.Repositories, sheets excel.Store, codec *exceltime.Codec, catalog CatalogService, log zerolog.Logger) *timerService {
	return &timerService{
		repos:   repos,
		sheets:  sheets,
		codec:   codec,
		catalog: catalog,
		log:     log.With().Str("service", "timer").Logger(),
	}
}

// Start begins a new timer for an employee. At most one timer may run per
// employee; the employee must exist in the workbook roster.
func (s *timerService) Start(ctx context.Context, req *models.StartTimerRequest) (*models.ActiveTimer, error) {
	employee, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repos.Timer.Exists(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("check active timer: %w", err)
	}
	if exists {
		return nil, ErrTimerAlreadyRunning
	}

	timer := &models.ActiveTimer{
		ID:           uuid.New().String(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		StartTime:    time.Now().UTC(),
	}

	if strings.EqualFold(req.Mode, "non_productive") {
		if req.NonProductiveTask == "" {
			return nil, ErrMissingTask
		}
		timer.IsNonProductive = true
		timer.Task = req.NonProductiveTask
	} else {
		if req.Task == "" {
			return nil, ErrMissingTask
		}
		if req.ProjectID == "" {
			return nil, ErrMissingProject
		}
		timer.Task = req.Task
		timer.ProjectID = &req.ProjectID
		if req.ProjectName != "" {
			timer.ProjectName = &req.ProjectName
		}
	}

	if err := s.repos.Timer.Create(ctx, timer); err != nil {
		return nil, fmt.Errorf("create timer: %w", err)
	}

	s.log.Info().
		Str("employee", timer.EmployeeName).
		Str("task", timer.Task).
		Bool("non_productive", timer.IsNonProductive).
		Msg("Timer started")

	return timer, nil
}

// Stop ends the employee's running timer and persists the completed record.
// The database write is the one that matters; the workbook append is
// best-effort and a failure there only logs.
func (s *timerService) Stop(ctx context.Context, employeeID string) (*models.TimeRecord, error) {
	timer, err := s.repos.Timer.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("look up active timer: %w", err)
	}
	if timer == nil {
		return nil, ErrNoActiveTimer
	}

	endTime := time.Now().UTC()
	duration := int64(endTime.Sub(timer.StartTime).Seconds())
	if duration < 0 {
		s.log.Warn().Str("timer_id", timer.ID).Msg("Negative duration detected, clamping to 0")
		duration = 0
	}

	record := &models.TimeRecord{
		ID:              timer.ID,
		EmployeeID:      timer.EmployeeID,
		EmployeeName:    timer.EmployeeName,
		ProjectID:       timer.ProjectID,
		ProjectName:     timer.ProjectName,
		Task:            timer.Task,
		IsNonProductive: timer.IsNonProductive,
		StartTime:       timer.StartTime,
		EndTime:         &endTime,
		DurationSeconds: &duration,
	}

	if err := s.repos.Record.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save time record: %w", err)
	}

	s.appendToWorkbook(ctx, record)

	if err := s.repos.Timer.Delete(ctx, timer.ID); err != nil {
		return nil, fmt.Errorf("remove active timer: %w", err)
	}

	s.log.Info().
		Str("employee", record.EmployeeName).
		Str("task", record.Task).
		Int64("duration_seconds", duration).
		Msg("Timer stopped")

	return record, nil
}

// GetActive returns the employee's running timer, nil when there is none
func (s *timerService) GetActive(ctx context.Context, employeeID string) (*models.ActiveTimer, error) {
	return s.repos.Timer.GetByEmployee(ctx, employeeID)
}

// ListActive returns all running timers
func (s *timerService) ListActive(ctx context.Context) ([]*models.ActiveTimer, error) {
	return s.repos.Timer.List(ctx)
}

// appendToWorkbook mirrors a freshly completed record into its record sheet.
// The record is already safe in the database, so workbook failures are
// logged and swallowed.
func (s *timerService) appendToWorkbook(ctx context.Context, rec *models.TimeRecord) {
	if s.sheets == nil {
		return
	}

	dateStr, startStr := s.codec.Format(rec.StartTime)
	_, endStr := s.codec.Format(*rec.EndTime)
	seconds := *rec.DurationSeconds

	var sheet string
	var headers []string
	var row []interface{}
	if rec.IsNonProductive {
		sheet = excel.SheetNonProductive
		headers = excel.NonProductiveHeaders
		row = []interface{}{
			dateStr, rec.EmployeeID, rec.EmployeeName, rec.Task,
			startStr, endStr, exceltime.FormatDuration(seconds), roundHours(seconds),
		}
	} else {
		sheet = excel.SheetProductive
		headers = excel.ProductiveHeaders
		row = []interface{}{
			dateStr, rec.EmployeeID, rec.EmployeeName, deref(rec.ProjectID), deref(rec.ProjectName),
			rec.Task, startStr, endStr, exceltime.FormatDuration(seconds), roundHours(seconds),
		}
	}

	if err := s.sheets.AppendRow(ctx, sheet, headers, row); err != nil {
		s.log.Error().Err(err).Str("sheet", sheet).
			Msg("Failed to append record to workbook, record kept in database")
	}
}

func (s *timerService) findEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	employees, err := s.catalog.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employee roster: %w", err)
	}
	for i := range employees {
		if employees[i].ID == employeeID {
			return &employees[i], nil
		}
	}
	return nil, ErrEmployeeNotFound
}
