package excel

// Worksheet names. The record sheets are the two reconciliation partitions;
// the remaining sheets hold master data maintained by hand in the workbook.
const (
	SheetProductive         = "Záznamy"
	SheetNonProductive      = "Neproduktivní záznamy"
	SheetEmployees          = "Zaměstnanci"
	SheetProjects           = "Projekty"
	SheetTasks              = "Úkony"
	SheetNonProductiveTasks = "Neproduktivní úkony"
)

// Record sheet columns. Date and time live in separate string columns;
// DurationSeconds is the legacy integer column still accepted on read,
// DurationHours is what gets written.
const (
	ColDate              = "Date"
	ColEmployeeID        = "EmployeeId"
	ColEmployeeName      = "EmployeeName"
	ColProjectID         = "ProjectId"
	ColProjectName       = "ProjectName"
	ColTask              = "Task"
	ColStartTime         = "StartTime"
	ColEndTime           = "EndTime"
	ColDurationFormatted = "DurationFormatted"
	ColDurationHours     = "DurationHours"
	ColDurationSeconds   = "DurationSeconds"
)

// Master data sheet columns
const (
	ColMasterID   = "ID"
	ColMasterName = "Název"
	ColEmpName    = "Jméno"
)

// ProductiveHeaders is the column order of the productive record sheet
var ProductiveHeaders = []string{
	ColDate, ColEmployeeID, ColEmployeeName, ColProjectID, ColProjectName,
	ColTask, ColStartTime, ColEndTime, ColDurationFormatted, ColDurationHours,
}

// NonProductiveHeaders is the column order of the non-productive record
// sheet: the productive layout minus the project columns
var NonProductiveHeaders = []string{
	ColDate, ColEmployeeID, ColEmployeeName,
	ColTask, ColStartTime, ColEndTime, ColDurationFormatted, ColDurationHours,
}
