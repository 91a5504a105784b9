package models

// SyncResult is the structured outcome of one reconciliation run.
//
// The counters cover both phases: UpsertedFromExcel/InsertedCount/UpdatedCount
// describe what phase 1 absorbed from the workbook, ProductiveCount and
// NonProductiveCount describe what phase 2 republished into the two sheets.
type SyncResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	ProductiveCount    int    `json:"productive_count"`
	NonProductiveCount int    `json:"non_productive_count"`
	UpsertedFromExcel  int    `json:"upserted_from_excel"`
	InsertedCount      int    `json:"inserted_count"`
	UpdatedCount       int    `json:"updated_count"`
	Error              string `json:"error,omitempty"`
}

// EmployeeSummary aggregates one employee's tracked time for the dashboard
type EmployeeSummary struct {
	EmployeeID           string `json:"employee_id"`
	EmployeeName         string `json:"employee_name"`
	TodayProductiveSecs  int64  `json:"today_productive_seconds"`
	TodayNonProdSecs     int64  `json:"today_non_productive_seconds"`
	WeekProductiveSecs   int64  `json:"week_productive_seconds"`
	WeekNonProdSecs      int64  `json:"week_non_productive_seconds"`
	HasActiveTimer       bool   `json:"has_active_timer"`
	ActiveTimerTask      string `json:"active_timer_task,omitempty"`
	ActiveTimerElapsedS  int64  `json:"active_timer_elapsed_seconds,omitempty"`
}

// TimerAlert flags a timer that has been running suspiciously long
type TimerAlert struct {
	Type         string  `json:"type"`
	EmployeeName string  `json:"employee_name"`
	Task         string  `json:"task"`
	Hours        float64 `json:"hours"`
}
