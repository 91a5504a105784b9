package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/mocks"
	"github.com/timesheet-sync-api/internal/models"
	"github.com/timesheet-sync-api/internal/service"
)

func workbookWithRoster() *mocks.MockWorkbook {
	workbook := mocks.NewMockWorkbook()
	workbook.SeedRow(excel.SheetEmployees, excel.Row{excel.ColMasterID: "E1", excel.ColEmpName: "Jan Novák"})
	workbook.SeedRow(excel.SheetEmployees, excel.Row{excel.ColMasterID: "E2", excel.ColEmpName: "Petra Svobodová"})
	return workbook
}

func productiveStart() *models.StartTimerRequest {
	return &models.StartTimerRequest{
		EmployeeID:  "E1",
		ProjectID:   "P1",
		ProjectName: "Hala 3",
		Task:        "NAKLÁDKA",
	}
}

func TestTimerStart(t *testing.T) {
	env := newTestEnv(t, workbookWithRoster())

	timer, err := env.services.Timer.Start(context.Background(), productiveStart())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if timer.ID == "" {
		t.Error("Expected a generated timer id")
	}
	if timer.EmployeeName != "Jan Novák" {
		t.Errorf("Expected the roster name, got %q", timer.EmployeeName)
	}
	if timer.IsNonProductive {
		t.Error("Expected a productive timer")
	}
	if timer.ProjectID == nil || *timer.ProjectID != "P1" {
		t.Errorf("Expected project P1, got %v", timer.ProjectID)
	}
	if timer.StartTime.Location() != time.UTC {
		t.Errorf("Expected UTC start time, got %v", timer.StartTime.Location())
	}
	if len(env.timers.Timers) != 1 {
		t.Errorf("Expected 1 stored timer, got %d", len(env.timers.Timers))
	}
}

func TestTimerStart_NonProductive(t *testing.T) {
	env := newTestEnv(t, workbookWithRoster())

	timer, err := env.services.Timer.Start(context.Background(), &models.StartTimerRequest{
		EmployeeID:        "E2",
		Mode:              "non_productive",
		NonProductiveTask: "ÚKLID",
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !timer.IsNonProductive {
		t.Error("Expected a non-productive timer")
	}
	if timer.Task != "ÚKLID" {
		t.Errorf("Expected task ÚKLID, got %q", timer.Task)
	}
	if timer.ProjectID != nil {
		t.Error("Non-productive timers must not carry a project")
	}
}

func TestTimerStart_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     *models.StartTimerRequest
		wantErr error
	}{
		{
			name:    "unknown employee",
			req:     &models.StartTimerRequest{EmployeeID: "nobody", ProjectID: "P1", Task: "NAKLÁDKA"},
			wantErr: service.ErrEmployeeNotFound,
		},
		{
			name:    "productive without task",
			req:     &models.StartTimerRequest{EmployeeID: "E1", ProjectID: "P1"},
			wantErr: service.ErrMissingTask,
		},
		{
			name:    "productive without project",
			req:     &models.StartTimerRequest{EmployeeID: "E1", Task: "NAKLÁDKA"},
			wantErr: service.ErrMissingProject,
		},
		{
			name:    "non-productive without task",
			req:     &models.StartTimerRequest{EmployeeID: "E1", Mode: "non_productive"},
			wantErr: service.ErrMissingTask,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, workbookWithRoster())
			_, err := env.services.Timer.Start(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTimerStart_OnePerEmployee(t *testing.T) {
	env := newTestEnv(t, workbookWithRoster())
	ctx := context.Background()

	if _, err := env.services.Timer.Start(ctx, productiveStart()); err != nil {
		t.Fatalf("First start failed: %v", err)
	}
	if _, err := env.services.Timer.Start(ctx, productiveStart()); !errors.Is(err, service.ErrTimerAlreadyRunning) {
		t.Errorf("Expected ErrTimerAlreadyRunning, got %v", err)
	}

	// A different employee is unaffected
	req := productiveStart()
	req.EmployeeID = "E2"
	if _, err := env.services.Timer.Start(ctx, req); err != nil {
		t.Errorf("Start for second employee failed: %v", err)
	}
}

func TestTimerStop(t *testing.T) {
	workbook := workbookWithRoster()
	env := newTestEnv(t, workbook)
	ctx := context.Background()

	projectID := "P1"
	env.timers.Timers["E1"] = &models.ActiveTimer{
		ID:           "timer-1",
		EmployeeID:   "E1",
		EmployeeName: "Jan Novák",
		ProjectID:    &projectID,
		Task:         "NAKLÁDKA",
		StartTime:    time.Now().UTC().Add(-30 * time.Minute),
	}

	record, err := env.services.Timer.Stop(ctx, "E1")
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if record.ID != "timer-1" {
		t.Errorf("Expected the record to keep the timer id, got %q", record.ID)
	}
	if record.EndTime == nil {
		t.Fatal("Expected an end time")
	}
	if record.DurationSeconds == nil {
		t.Fatal("Expected a duration")
	}
	if secs := *record.DurationSeconds; secs < 1799 || secs > 1801 {
		t.Errorf("Expected roughly 1800s, got %d", secs)
	}
	if env.records.CreateCalls != 1 {
		t.Errorf("Expected 1 record created, got %d", env.records.CreateCalls)
	}
	if len(env.timers.Timers) != 0 {
		t.Error("Expected the active timer removed")
	}
	if workbook.AppendCalls != 1 {
		t.Errorf("Expected the record appended to the workbook, got %d appends", workbook.AppendCalls)
	}
	if len(workbook.Sheets[excel.SheetProductive]) != 1 {
		t.Errorf("Expected 1 row in the productive sheet, got %d", len(workbook.Sheets[excel.SheetProductive]))
	}
}

func TestTimerStop_NoActiveTimer(t *testing.T) {
	env := newTestEnv(t, workbookWithRoster())

	_, err := env.services.Timer.Stop(context.Background(), "E1")
	if !errors.Is(err, service.ErrNoActiveTimer) {
		t.Errorf("Expected ErrNoActiveTimer, got %v", err)
	}
}

func TestTimerStop_WorkbookFailureKeepsRecord(t *testing.T) {
	workbook := workbookWithRoster()
	env := newTestEnv(t, workbook)
	workbook.WriteError = errors.New("file locked")

	env.timers.Timers["E1"] = &models.ActiveTimer{
		ID:              "timer-1",
		EmployeeID:      "E1",
		EmployeeName:    "Jan Novák",
		Task:            "ÚKLID",
		IsNonProductive: true,
		StartTime:       time.Now().UTC().Add(-5 * time.Minute),
	}

	record, err := env.services.Timer.Stop(context.Background(), "E1")
	if err != nil {
		t.Fatalf("Stop must not fail on a workbook error: %v", err)
	}
	if record == nil {
		t.Fatal("Expected the completed record back")
	}
	if len(env.records.Records) != 1 {
		t.Errorf("Expected the record persisted, got %d records", len(env.records.Records))
	}
	if len(env.timers.Timers) != 0 {
		t.Error("Expected the active timer removed despite the workbook failure")
	}
}

func TestTimerGetAndList(t *testing.T) {
	env := newTestEnv(t, workbookWithRoster())
	ctx := context.Background()

	if _, err := env.services.Timer.Start(ctx, productiveStart()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	timer, err := env.services.Timer.GetActive(ctx, "E1")
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if timer == nil || timer.EmployeeID != "E1" {
		t.Errorf("Expected E1's timer, got %+v", timer)
	}

	none, err := env.services.Timer.GetActive(ctx, "E2")
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if none != nil {
		t.Errorf("Expected no timer for E2, got %+v", none)
	}

	timers, err := env.services.Timer.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(timers) != 1 {
		t.Errorf("Expected 1 active timer, got %d", len(timers))
	}
}
