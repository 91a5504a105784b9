package mocks

import (
	"context"
	"time"

	"github.com/timesheet-sync-api/internal/models"
)

// MockRecordRepository is a mock implementation of TimeRecordRepository.
// Insertion order is preserved so window matches come back oldest-first,
// like the real repository's ORDER BY created_at.
type MockRecordRepository struct {
	Records     map[string]*models.TimeRecord
	CreateError error
	UpdateError error
	QueryError  error
	CreateCalls int
	UpdateCalls int

	order []string
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{
		Records: make(map[string]*models.TimeRecord),
	}
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *models.TimeRecord) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.Records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *MockRecordRepository) Update(ctx context.Context, rec *models.TimeRecord) error {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Records[rec.ID] = rec
	return nil
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id string) (*models.TimeRecord, error) {
	return m.Records[id], nil
}

func (m *MockRecordRepository) FindInWindow(ctx context.Context, window models.RecordWindow) ([]*models.TimeRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	var matches []*models.TimeRecord
	for _, id := range m.order {
		rec, ok := m.Records[id]
		if !ok {
			continue
		}
		if rec.EmployeeID != window.EmployeeID ||
			rec.Task != window.Task ||
			rec.IsNonProductive != window.IsNonProductive {
			continue
		}
		if rec.StartTime.Before(window.WindowStart) || !rec.StartTime.Before(window.WindowEnd) {
			continue
		}
		matches = append(matches, rec)
	}
	return matches, nil
}

func (m *MockRecordRepository) ListCompleted(ctx context.Context) ([]*models.TimeRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	var records []*models.TimeRecord
	for _, id := range m.order {
		if rec, ok := m.Records[id]; ok && rec.EndTime != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockRecordRepository) ListByEmployeeSince(ctx context.Context, employeeID string, since time.Time) ([]*models.TimeRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	var records []*models.TimeRecord
	for _, id := range m.order {
		if rec, ok := m.Records[id]; ok && rec.EmployeeID == employeeID && !rec.StartTime.Before(since) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockRecordRepository) ListSince(ctx context.Context, since time.Time) ([]*models.TimeRecord, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	var records []*models.TimeRecord
	for _, id := range m.order {
		if rec, ok := m.Records[id]; ok && !rec.StartTime.Before(since) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockRecordRepository) Count(ctx context.Context) (int, error) {
	return len(m.Records), nil
}

// MockTimerRepository is a mock implementation of ActiveTimerRepository
type MockTimerRepository struct {
	Timers      map[string]*models.ActiveTimer // keyed by employee id
	CreateError error
	DeleteError error
	DeleteCalls int
}

func NewMockTimerRepository() *MockTimerRepository {
	return &MockTimerRepository{
		Timers: make(map[string]*models.ActiveTimer),
	}
}

func (m *MockTimerRepository) Create(ctx context.Context, timer *models.ActiveTimer) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Timers[timer.EmployeeID] = timer
	return nil
}

func (m *MockTimerRepository) GetByEmployee(ctx context.Context, employeeID string) (*models.ActiveTimer, error) {
	return m.Timers[employeeID], nil
}

func (m *MockTimerRepository) Exists(ctx context.Context, employeeID string) (bool, error) {
	_, exists := m.Timers[employeeID]
	return exists, nil
}

func (m *MockTimerRepository) List(ctx context.Context) ([]*models.ActiveTimer, error) {
	timers := make([]*models.ActiveTimer, 0, len(m.Timers))
	for _, t := range m.Timers {
		timers = append(timers, t)
	}
	return timers, nil
}

func (m *MockTimerRepository) Delete(ctx context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	for employeeID, t := range m.Timers {
		if t.ID == id {
			delete(m.Timers, employeeID)
		}
	}
	return nil
}
