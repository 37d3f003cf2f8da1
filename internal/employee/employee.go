package employee

import "github.com/ruangkerja/leave-management/internal"

// Employee is the directory view of a user: identity plus the current-year
// ledger summary HR screens show next to each name.
type Employee struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	AnnualTotal int    `json:"annual_total"`
	AnnualUsed  int    `json:"annual_used"`
	SickTotal   int    `json:"sick_total"`
	SickUsed    int    `json:"sick_used"`
}

type ListResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

var ErrEmployeeNotFound = internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
