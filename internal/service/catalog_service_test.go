package service_test

import (
	"context"
	"testing"

	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/mocks"
)

func TestCatalogEmployees_SkipsIncompleteRows(t *testing.T) {
	workbook := mocks.NewMockWorkbook()
	workbook.SeedRow(excel.SheetEmployees, excel.Row{excel.ColMasterID: "E1", excel.ColEmpName: "Jan Novák"})
	workbook.SeedRow(excel.SheetEmployees, excel.Row{excel.ColMasterID: "E2"})
	workbook.SeedRow(excel.SheetEmployees, excel.Row{excel.ColEmpName: "Bez ID"})
	env := newTestEnv(t, workbook)

	employees, err := env.services.Catalog.Employees(context.Background())
	if err != nil {
		t.Fatalf("Employees failed: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("Expected 1 complete employee, got %d", len(employees))
	}
	if employees[0].ID != "E1" || employees[0].Name != "Jan Novák" {
		t.Errorf("Unexpected employee: %+v", employees[0])
	}
}

func TestCatalogProjects(t *testing.T) {
	workbook := mocks.NewMockWorkbook()
	workbook.SeedRow(excel.SheetProjects, excel.Row{excel.ColMasterID: "P1", excel.ColMasterName: "Hala 3"})
	workbook.SeedRow(excel.SheetProjects, excel.Row{excel.ColMasterID: "P2", excel.ColMasterName: "Sklad"})
	env := newTestEnv(t, workbook)

	projects, err := env.services.Catalog.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("Expected 2 projects, got %d", len(projects))
	}
}

func TestCatalogTasks_SeedsDefaultsIntoEmptySheet(t *testing.T) {
	workbook := mocks.NewMockWorkbook()
	env := newTestEnv(t, workbook)

	tasks, err := env.services.Catalog.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if len(tasks) != 5 {
		t.Fatalf("Expected 5 default tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "NAKLÁDKA" {
		t.Errorf("Expected NAKLÁDKA first, got %q", tasks[0].Name)
	}
	if workbook.AppendCalls != 5 {
		t.Errorf("Expected the defaults written to the sheet, got %d appends", workbook.AppendCalls)
	}

	// Subsequent reads come back from the sheet, not from reseeding
	workbook.AppendCalls = 0
	again, err := env.services.Catalog.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Second Tasks call failed: %v", err)
	}
	if len(again) != 5 || workbook.AppendCalls != 0 {
		t.Errorf("Expected the seeded sheet reused, got %d tasks and %d appends", len(again), workbook.AppendCalls)
	}
}

func TestCatalogNonProductiveTasks_ReadsExistingSheet(t *testing.T) {
	workbook := mocks.NewMockWorkbook()
	workbook.SeedRow(excel.SheetNonProductiveTasks, excel.Row{excel.ColMasterName: "ÚKLID"})
	workbook.SeedRow(excel.SheetNonProductiveTasks, excel.Row{excel.ColMasterName: "ŠROT"})
	env := newTestEnv(t, workbook)

	tasks, err := env.services.Catalog.NonProductiveTasks(context.Background())
	if err != nil {
		t.Fatalf("NonProductiveTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(tasks))
	}
	if workbook.AppendCalls != 0 {
		t.Errorf("Expected no seeding on a populated sheet, got %d appends", workbook.AppendCalls)
	}
}
