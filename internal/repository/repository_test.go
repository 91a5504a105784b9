package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/timesheet-sync-api/internal/mocks"
	"github.com/timesheet-sync-api/internal/models"
)

func completedRecord(id string, start time.Time) *models.TimeRecord {
	end := start.Add(time.Hour)
	duration := int64(3600)
	return &models.TimeRecord{
		ID:              id,
		EmployeeID:      "E1",
		EmployeeName:    "Jan Novák",
		Task:            "NAKLÁDKA",
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &duration,
	}
}

func TestMockRecordRepository_FindInWindow(t *testing.T) {
	repo := mocks.NewMockRecordRepository()
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	window := models.RecordWindow{
		EmployeeID:      "E1",
		Task:            "NAKLÁDKA",
		IsNonProductive: false,
		WindowStart:     base,
		WindowEnd:       base.Add(time.Minute),
	}

	// Exactly on the window start: included
	repo.Create(ctx, completedRecord("at-start", base))
	// Inside the window
	repo.Create(ctx, completedRecord("inside", base.Add(30*time.Second)))
	// Exactly on the window end: excluded, the range is half-open
	repo.Create(ctx, completedRecord("at-end", base.Add(time.Minute)))
	// Right employee and time, wrong task
	other := completedRecord("other-task", base)
	other.Task = "VYKLÁDKA"
	repo.Create(ctx, other)
	// Right key, wrong partition
	nonProd := completedRecord("non-prod", base)
	nonProd.IsNonProductive = true
	repo.Create(ctx, nonProd)

	matches, err := repo.FindInWindow(ctx, window)
	if err != nil {
		t.Fatalf("FindInWindow failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	// Matches come back in creation order, oldest first
	if matches[0].ID != "at-start" || matches[1].ID != "inside" {
		t.Errorf("Expected [at-start inside], got [%s %s]", matches[0].ID, matches[1].ID)
	}
}

func TestMockRecordRepository_ListCompleted(t *testing.T) {
	repo := mocks.NewMockRecordRepository()
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	repo.Create(ctx, completedRecord("done", base))

	open := completedRecord("open", base.Add(time.Hour))
	open.EndTime = nil
	open.DurationSeconds = nil
	repo.Create(ctx, open)

	records, err := repo.ListCompleted(ctx)
	if err != nil {
		t.Fatalf("ListCompleted failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 completed record, got %d", len(records))
	}
	if records[0].ID != "done" {
		t.Errorf("Expected the completed record, got %q", records[0].ID)
	}
}

func TestMockRecordRepository_ListByEmployeeSince(t *testing.T) {
	repo := mocks.NewMockRecordRepository()
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	repo.Create(ctx, completedRecord("in-range", base))

	early := completedRecord("too-early", base.Add(-48*time.Hour))
	repo.Create(ctx, early)

	otherEmployee := completedRecord("other", base)
	otherEmployee.EmployeeID = "E2"
	repo.Create(ctx, otherEmployee)

	records, err := repo.ListByEmployeeSince(ctx, "E1", base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListByEmployeeSince failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "in-range" {
		t.Errorf("Expected only the in-range record for E1, got %d records", len(records))
	}
}

func TestMockRecordRepository_Update(t *testing.T) {
	repo := mocks.NewMockRecordRepository()
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	rec := completedRecord("rec-1", base)
	repo.Create(ctx, rec)

	rec.EmployeeName = "Renamed"
	if err := repo.Update(ctx, rec); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.EmployeeName != "Renamed" {
		t.Errorf("Expected the update persisted, got %q", stored.EmployeeName)
	}
	if repo.UpdateCalls != 1 {
		t.Errorf("Expected 1 update call, got %d", repo.UpdateCalls)
	}
}

func TestMockTimerRepository_Lifecycle(t *testing.T) {
	repo := mocks.NewMockTimerRepository()
	ctx := context.Background()

	timer := &models.ActiveTimer{
		ID:           "timer-1",
		EmployeeID:   "E1",
		EmployeeName: "Jan Novák",
		Task:         "NAKLÁDKA",
		StartTime:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, timer); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := repo.Exists(ctx, "E1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Expected the timer to exist")
	}

	stored, err := repo.GetByEmployee(ctx, "E1")
	if err != nil {
		t.Fatalf("GetByEmployee failed: %v", err)
	}
	if stored == nil || stored.ID != "timer-1" {
		t.Errorf("Expected timer-1, got %+v", stored)
	}

	timers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(timers) != 1 {
		t.Errorf("Expected 1 timer, got %d", len(timers))
	}

	if err := repo.Delete(ctx, "timer-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	exists, _ = repo.Exists(ctx, "E1")
	if exists {
		t.Error("Expected the timer gone after delete")
	}
	if repo.DeleteCalls != 1 {
		t.Errorf("Expected 1 delete call, got %d", repo.DeleteCalls)
	}
}

func TestMockTimerRepository_GetByEmployeeMissing(t *testing.T) {
	repo := mocks.NewMockTimerRepository()

	timer, err := repo.GetByEmployee(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetByEmployee failed: %v", err)
	}
	if timer != nil {
		t.Errorf("Expected nil for a missing timer, got %+v", timer)
	}
}
