package models

// Employee is a roster entry read from the workbook
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is a project entry read from the workbook
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a selectable task label read from the workbook
type Task struct {
	Name string `json:"name"`
}
