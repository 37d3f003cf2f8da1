package report

import "time"

// Filter narrows the all-requests listing. Zero values mean "no constraint";
// Search matches employee name or request reason, case-insensitively.
type Filter struct {
	Status      string
	LeaveTypeID int64
	Search      string
}

// Row is one request joined with the display names list views and exports
// need.
type Row struct {
	RequestID       string     `json:"request_id"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	Department      string     `json:"department"`
	LeaveTypeID     int64      `json:"leave_type_id"`
	LeaveTypeName   string     `json:"leave_type_name"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	WorkingDays     int        `json:"working_days"`
	Reason          *string    `json:"reason,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TypeAggregate counts requests per leave type, split by outcome.
type TypeAggregate struct {
	LeaveTypeID   int64  `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Pending       int64  `json:"pending"`
	Approved      int64  `json:"approved"`
	Rejected      int64  `json:"rejected"`
	Total         int64  `json:"total"`
}

type ListResponse struct {
	LeaveRequests []Row `json:"leave_requests"`
	Total         int   `json:"total"`
}

type AggregateResponse struct {
	ByType []TypeAggregate `json:"by_type"`
}
