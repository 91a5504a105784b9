package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/exceltime"
	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/repository"
)

// longRunningThreshold marks timers worth flagging on the dashboard
const longRunningThreshold = 4 * time.Hour

// reportService aggregates records for history and dashboard views. Day and
// week boundaries are computed in the workbook display zone so the numbers
// line up with what people see in Excel.
type reportService struct {
	repos   *repository.Repositories
	catalog CatalogService
	codec   *exceltime.Codec
	log     zerolog.Logger
}

// newReportService creates a new ReportService
func newReportService(repos *repository.Repositories, catalog CatalogService, codec *exceltime.Codec, log zerolog.Logger) *reportService {
	return &reportService{
		repos:   repos,
		catalog: catalog,
		codec:   codec,
		log:     log.With().Str("service", "report").Logger(),
	}
}

// EmployeeHistory returns one employee's records from the last N days
func (s *reportService) EmployeeHistory(ctx context.Context, employeeID string, days int) ([]*models.TimeRecord, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repos.Record.ListByEmployeeSince(ctx, employeeID, since)
}

// DashboardSummaries returns per-employee today/week totals plus alerts for
// long-running timers
func (s *reportService) DashboardSummaries(ctx context.Context) ([]models.EmployeeSummary, []models.TimerAlert, error) {
	employees, err := s.catalog.Employees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load employee roster: %w", err)
	}

	now := time.Now().In(s.codec.Location())
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -int((now.Weekday()+6)%7))

	records, err := s.repos.Record.ListSince(ctx, weekStart)
	if err != nil {
		return nil, nil, fmt.Errorf("load week records: %w", err)
	}
	timers, err := s.repos.Timer.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load active timers: %w", err)
	}

	timerByEmployee := make(map[string]*models.ActiveTimer, len(timers))
	for _, t := range timers {
		timerByEmployee[t.EmployeeID] = t
	}

	summaries := make([]models.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		summary := models.EmployeeSummary{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
		}

		for _, rec := range records {
			if rec.EmployeeID != emp.ID || rec.DurationSeconds == nil {
				continue
			}
			secs := *rec.DurationSeconds
			if rec.IsNonProductive {
				summary.WeekNonProdSecs += secs
			} else {
				summary.WeekProductiveSecs += secs
			}
			if !rec.StartTime.Before(todayStart) {
				if rec.IsNonProductive {
					summary.TodayNonProdSecs += secs
				} else {
					summary.TodayProductiveSecs += secs
				}
			}
		}

		if timer := timerByEmployee[emp.ID]; timer != nil {
			summary.HasActiveTimer = true
			summary.ActiveTimerTask = timer.Task
			summary.ActiveTimerElapsedS = int64(time.Since(timer.StartTime).Seconds())
		}

		summaries = append(summaries, summary)
	}

	var alerts []models.TimerAlert
	for _, timer := range timers {
		elapsed := time.Since(timer.StartTime)
		if elapsed > longRunningThreshold {
			alerts = append(alerts, models.TimerAlert{
				Type:         "long_running",
				EmployeeName: timer.EmployeeName,
				Task:         timer.Task,
				Hours:        math.Round(elapsed.Hours()*10) / 10,
			})
		}
	}

	return summaries, alerts, nil
}
