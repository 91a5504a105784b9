package mocks

import (
	"context"
	"fmt"

	"github.com/timesheet-sync-api/internal/excel"
)

// MockWorkbook is an in-memory implementation of excel.Store. Writes are
// reflected back into subsequent reads, so a test can run the reconciler
// twice and see the second run read what the first one wrote.
type MockWorkbook struct {
	Sheets  map[string][]excel.Row
	Headers map[string][]string

	ReadErrors   map[string]error // per-sheet read failures
	WriteError   error
	AppendCalls  int
	ReplaceCalls int
}

func NewMockWorkbook() *MockWorkbook {
	return &MockWorkbook{
		Sheets:     make(map[string][]excel.Row),
		Headers:    make(map[string][]string),
		ReadErrors: make(map[string]error),
	}
}

func (m *MockWorkbook) GetRows(ctx context.Context, sheet string) ([]excel.Row, error) {
	if err := m.ReadErrors[sheet]; err != nil {
		return nil, err
	}
	return m.Sheets[sheet], nil
}

func (m *MockWorkbook) AppendRow(ctx context.Context, sheet string, headers []string, row []interface{}) error {
	m.AppendCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	if _, ok := m.Headers[sheet]; !ok {
		m.Headers[sheet] = headers
	}
	m.Sheets[sheet] = append(m.Sheets[sheet], cellsToRow(m.Headers[sheet], row))
	return nil
}

func (m *MockWorkbook) ReplaceRows(ctx context.Context, sheet string, headers []string, rows [][]interface{}) error {
	m.ReplaceCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Headers[sheet] = headers
	replaced := make([]excel.Row, len(rows))
	for i, row := range rows {
		replaced[i] = cellsToRow(headers, row)
	}
	m.Sheets[sheet] = replaced
	return nil
}

// SeedRow adds one row to a sheet, as if a person had typed it into Excel
func (m *MockWorkbook) SeedRow(sheet string, row excel.Row) {
	m.Sheets[sheet] = append(m.Sheets[sheet], row)
}

func cellsToRow(headers []string, cells []interface{}) excel.Row {
	row := make(excel.Row, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = fmt.Sprint(cells[i])
		} else {
			row[h] = ""
		}
	}
	return row
}
