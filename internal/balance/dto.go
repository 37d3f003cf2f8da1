package balance

import "errors"

// UpdateTotalsDTO is the HR payload for adjusting an employee's entitlements
// for the current year.
type UpdateTotalsDTO struct {
	AnnualTotal int `json:"annual_total"`
	SickTotal   int `json:"sick_total"`
}

func (dto UpdateTotalsDTO) Validate() error {
	if dto.AnnualTotal < 0 || dto.SickTotal < 0 {
		return errors.New("totals cannot be negative")
	}
	return nil
}

// SummaryResponse mirrors the shape the dashboards consume: one annual and one
// sick pair per employee and year.
type SummaryResponse struct {
	EmployeeID  int64 `json:"employee_id"`
	Year        int   `json:"year"`
	AnnualTotal int   `json:"annual_total"`
	AnnualUsed  int   `json:"annual_used"`
	SickTotal   int   `json:"sick_total"`
	SickUsed    int   `json:"sick_used"`
}
