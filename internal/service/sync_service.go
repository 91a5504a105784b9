package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/exceltime"
	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/repository"
	"github.com/timesheet-sync-api/internal/validation"
)

// syncService is the concrete implementation of SyncService.
//
// The database is the durable source of truth, but edits made directly in
// the workbook are accepted: phase 1 absorbs every worksheet row into the
// database via approximate matching, phase 2 rewrites both worksheets from
// the full database contents. Rows are matched on (employee, task,
// partition, start minute) because the workbook carries no record ids; when
// several records fall into the same minute window the earliest-created one
// is updated and the rest are left alone. Phase 1 upserts are not
// transactional with the phase 2 rewrite, so a crash between the phases
// leaves the workbook stale until the next run.
type syncService struct {
	repos     *repository.Repositories
	sheets    excel.Store
	codec     *exceltime.Codec
	validator *validation.RowValidator
	log       zerolog.Logger
}

// newSyncService creates a new SyncService
func newSyncService(repos *repository.Repositories, sheets excel.Store, codec *exceltime.Codec, log zerolog.Logger) *syncService {
	return &syncService{
		repos:     repos,
		sheets:    sheets,
		codec:     codec,
		validator: validation.NewRowValidator(),
		log:       log.With().Str("service", "sync").Logger(),
	}
}

// matchWindow is the width of the approximate-matching window
const matchWindow = time.Minute

// Run executes one full reconciliation
func (s *syncService) Run(ctx context.Context) *models.SyncResult {
	if s.sheets == nil {
		return &models.SyncResult{
			Success: false,
			Error:   "workbook not available, set EXCEL_FILE_PATH",
		}
	}

	start := time.Now()
	result := &models.SyncResult{}

	// Phase 1: absorb workbook rows into the database. A partition that
	// cannot be read is logged and skipped; the other still proceeds.
	s.absorbPartition(ctx, excel.SheetProductive, false, result)
	s.absorbPartition(ctx, excel.SheetNonProductive, true, result)

	s.log.Info().
		Int("upserted", result.UpsertedFromExcel).
		Int("inserted", result.InsertedCount).
		Int("updated", result.UpdatedCount).
		Msg("Absorbed workbook rows into database")

	// Phase 2: republish the full database contents into the workbook
	if err := s.republish(ctx, result); err != nil {
		s.log.Error().Err(err).Msg("Sync failed")
		result.Success = false
		result.Error = fmt.Sprintf("sync failed: %v", err)
		return result
	}

	result.Success = true
	result.Message = fmt.Sprintf(
		"synchronized %d productive and %d non-productive records; upserted %d from workbook (inserted %d, updated %d)",
		result.ProductiveCount, result.NonProductiveCount,
		result.UpsertedFromExcel, result.InsertedCount, result.UpdatedCount,
	)

	s.log.Info().
		Int("productive", result.ProductiveCount).
		Int("non_productive", result.NonProductiveCount).
		Dur("duration", time.Since(start)).
		Msg("Sync completed")

	return result
}

// absorbPartition reads one record sheet and upserts every parseable row
func (s *syncService) absorbPartition(ctx context.Context, sheet string, nonProductive bool, result *models.SyncResult) {
	rows, err := s.sheets.GetRows(ctx, sheet)
	if err != nil {
		s.log.Warn().Err(err).Str("sheet", sheet).Msg("Failed to read worksheet, skipping partition")
		return
	}

	for i, row := range rows {
		if err := s.upsertRow(ctx, row, nonProductive, result); err != nil {
			s.log.Warn().Err(err).Str("sheet", sheet).Int("row", i+2).Msg("Skipping workbook row")
		}
	}
}

// upsertRow absorbs a single worksheet row into the database
func (s *syncService) upsertRow(ctx context.Context, row excel.Row, nonProductive bool, result *models.SyncResult) error {
	if errs := s.validator.ValidateRecordRow(row); len(errs) > 0 {
		return fmt.Errorf("invalid row: %s: %s", errs[0].Field, errs[0].Message)
	}

	dateStr := row[excel.ColDate]
	startTime, err := s.codec.Parse(dateStr, row[excel.ColStartTime])
	if err != nil {
		return err
	}
	endTime, err := s.codec.Parse(dateStr, row[excel.ColEndTime])
	if err != nil {
		return err
	}
	// End before start on the same nominal date means the shift crossed
	// midnight
	endTime = exceltime.ResolveOvernight(startTime, endTime)

	duration := durationFromRow(row, startTime, endTime)

	var projectID, projectName *string
	if !nonProductive {
		projectID = optionalCell(row[excel.ColProjectID])
		projectName = optionalCell(row[excel.ColProjectName])
	}

	minute := exceltime.TruncateToMinute(startTime)
	window := models.RecordWindow{
		EmployeeID:      row[excel.ColEmployeeID],
		Task:            row[excel.ColTask],
		IsNonProductive: nonProductive,
		WindowStart:     minute,
		WindowEnd:       minute.Add(matchWindow),
	}

	matches, err := s.repos.Record.FindInWindow(ctx, window)
	if err != nil {
		return fmt.Errorf("window lookup: %w", err)
	}

	if len(matches) > 0 {
		// Ambiguous matches are resolved by taking the first; the workbook
		// carries no record ids, so there is nothing better to key on.
		rec := matches[0]
		rec.EmployeeName = row[excel.ColEmployeeName]
		rec.ProjectID = projectID
		rec.ProjectName = projectName
		rec.StartTime = startTime
		rec.EndTime = &endTime
		rec.DurationSeconds = &duration
		if err := s.repos.Record.Update(ctx, rec); err != nil {
			return fmt.Errorf("update record %s: %w", rec.ID, err)
		}
		result.UpdatedCount++
	} else {
		rec := &models.TimeRecord{
			ID:              uuid.New().String(),
			EmployeeID:      window.EmployeeID,
			EmployeeName:    row[excel.ColEmployeeName],
			ProjectID:       projectID,
			ProjectName:     projectName,
			Task:            window.Task,
			IsNonProductive: nonProductive,
			StartTime:       startTime,
			EndTime:         &endTime,
			DurationSeconds: &duration,
		}
		if err := s.repos.Record.Create(ctx, rec); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		result.InsertedCount++
	}

	result.UpsertedFromExcel++
	return nil
}

// republish rewrites both record sheets from the complete database contents.
// Only completed records are mirrored; active timers stay out of the
// workbook. A failed partition write does not stop the other, but fails the
// overall run.
func (s *syncService) republish(ctx context.Context, result *models.SyncResult) error {
	records, err := s.repos.Record.ListCompleted(ctx)
	if err != nil {
		return fmt.Errorf("list completed records: %w", err)
	}

	var productive, nonProductive [][]interface{}
	for _, rec := range records {
		if rec.IsNonProductive {
			nonProductive = append(nonProductive, s.recordRow(rec, excel.NonProductiveHeaders))
		} else {
			productive = append(productive, s.recordRow(rec, excel.ProductiveHeaders))
		}
	}

	var firstErr error
	if err := s.sheets.ReplaceRows(ctx, excel.SheetNonProductive, excel.NonProductiveHeaders, nonProductive); err != nil {
		s.log.Error().Err(err).Str("sheet", excel.SheetNonProductive).Msg("Failed to rewrite worksheet")
		firstErr = err
	}
	if err := s.sheets.ReplaceRows(ctx, excel.SheetProductive, excel.ProductiveHeaders, productive); err != nil {
		s.log.Error().Err(err).Str("sheet", excel.SheetProductive).Msg("Failed to rewrite worksheet")
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	result.ProductiveCount = len(productive)
	result.NonProductiveCount = len(nonProductive)
	return nil
}

// recordRow renders one database record as a worksheet row in header order
func (s *syncService) recordRow(rec *models.TimeRecord, headers []string) []interface{} {
	dateStr, startStr := s.codec.Format(rec.StartTime)
	endStr := ""
	if rec.EndTime != nil {
		_, endStr = s.codec.Format(*rec.EndTime)
	}

	var seconds int64
	if rec.DurationSeconds != nil {
		seconds = *rec.DurationSeconds
	}

	cells := map[string]interface{}{
		excel.ColDate:              dateStr,
		excel.ColEmployeeID:        rec.EmployeeID,
		excel.ColEmployeeName:      rec.EmployeeName,
		excel.ColProjectID:         deref(rec.ProjectID),
		excel.ColProjectName:       deref(rec.ProjectName),
		excel.ColTask:              rec.Task,
		excel.ColStartTime:         startStr,
		excel.ColEndTime:           endStr,
		excel.ColDurationFormatted: exceltime.FormatDuration(seconds),
		excel.ColDurationHours:     roundHours(seconds),
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = cells[h]
	}
	return row
}

// durationFromRow resolves the duration of a worksheet row. An explicit
// hours-decimal column wins, then the legacy seconds-integer column, then
// the difference of the parsed times.
func durationFromRow(row excel.Row, start, end time.Time) int64 {
	if raw := row[excel.ColDurationHours]; raw != "" {
		if hours, err := strconv.ParseFloat(raw, 64); err == nil {
			return int64(math.Round(hours * 3600))
		}
	}
	if raw := row[excel.ColDurationSeconds]; raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil {
			return int64(math.Round(secs))
		}
	}
	return int64(end.Sub(start).Seconds())
}

// roundHours converts seconds to the workbook's hours column, two decimals
func roundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

func optionalCell(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
