package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/timesheet-sync-api/internal/excel"
	"github.com/timesheet-sync-api/internal/models"
)

// Task labels seeded into an empty workbook so the timer UI has something
// to offer on first run
var (
	defaultTasks              = []string{"NAKLÁDKA", "VYKLÁDKA", "VYCHYSTÁVÁNÍ", "BALENÍ", "MANIPULACE"}
	defaultNonProductiveTasks = []string{"ÚKLID", "ŠROT", "MANIPULACE", "PŘEVÁŽENÍ"}
)

// catalogService reads master data (employees, projects, tasks) from the
// workbook. The workbook is the authority for master data; this service
// never writes it, except to seed the default task lists.
type catalogService struct {
	sheets excel.Store
	log    zerolog.Logger
}

// newCatalogService creates a new CatalogService
func newCatalogService(sheets excel.Store, log zerolog.Logger) *catalogService {
	return &catalogService{
		sheets: sheets,
		log:    log.With().Str("service", "catalog").Logger(),
	}
}

// Employees returns the workbook roster
func (s *catalogService) Employees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.readSheet(ctx, excel.SheetEmployees)
	if err != nil {
		return nil, err
	}

	employees := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		id, name := row[excel.ColMasterID], row[excel.ColEmpName]
		if id == "" || name == "" {
			continue
		}
		employees = append(employees, models.Employee{ID: id, Name: name})
	}
	return employees, nil
}

// Projects returns the workbook project list
func (s *catalogService) Projects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.readSheet(ctx, excel.SheetProjects)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		id, name := row[excel.ColMasterID], row[excel.ColMasterName]
		if id == "" || name == "" {
			continue
		}
		projects = append(projects, models.Project{ID: id, Name: name})
	}
	return projects, nil
}

// Tasks returns selectable productive task labels, seeding defaults into an
// empty sheet
func (s *catalogService) Tasks(ctx context.Context) ([]models.Task, error) {
	return s.taskSheet(ctx, excel.SheetTasks, defaultTasks)
}

// NonProductiveTasks returns selectable non-productive task labels
func (s *catalogService) NonProductiveTasks(ctx context.Context) ([]models.Task, error) {
	return s.taskSheet(ctx, excel.SheetNonProductiveTasks, defaultNonProductiveTasks)
}

func (s *catalogService) taskSheet(ctx context.Context, sheet string, defaults []string) ([]models.Task, error) {
	rows, err := s.readSheet(ctx, sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		headers := []string{excel.ColMasterName}
		for _, name := range defaults {
			if err := s.sheets.AppendRow(ctx, sheet, headers, []interface{}{name}); err != nil {
				return nil, fmt.Errorf("seed default tasks: %w", err)
			}
		}
		s.log.Info().Str("sheet", sheet).Int("count", len(defaults)).Msg("Seeded default tasks")

		tasks := make([]models.Task, len(defaults))
		for i, name := range defaults {
			tasks[i] = models.Task{Name: name}
		}
		return tasks, nil
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		if name := row[excel.ColMasterName]; name != "" {
			tasks = append(tasks, models.Task{Name: name})
		}
	}
	return tasks, nil
}

func (s *catalogService) readSheet(ctx context.Context, sheet string) ([]excel.Row, error) {
	if s.sheets == nil {
		return nil, fmt.Errorf("workbook not available")
	}
	rows, err := s.sheets.GetRows(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	return rows, nil
}
