package leave

import (
	"strings"
	"time"

	"github.com/ruangkerja/leave-management/internal"
)

const dateLayout = "2006-01-02"

// SubmitLeaveDTO is the employee-facing submission payload. Dates travel as
// YYYY-MM-DD strings, inclusive on both ends.
type SubmitLeaveDTO struct {
	LeaveTypeID int64  `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

// Validate checks the shape of the payload and returns the parsed date range.
// Type-dependent rules (justification, balance) are the service's job.
func (dto SubmitLeaveDTO) Validate() (start, end time.Time, err error) {
	if dto.LeaveTypeID <= 0 {
		return start, end, internal.NewValidationFieldError("leave_type_id", "leave type is required", internal.ErrCodeValidationFailed)
	}

	start, err = time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return start, end, internal.NewValidationFieldError("start_date", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeValidationFailed)
	}
	end, err = time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return start, end, internal.NewValidationFieldError("end_date", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeValidationFailed)
	}

	if end.Before(start) {
		return start, end, internal.NewValidationError("end date cannot be before start date", internal.ErrCodeInvalidDateRange)
	}
	if start.Year() != end.Year() {
		return start, end, internal.NewValidationError("leave cannot span calendar years", internal.ErrCodeInvalidDateRange)
	}

	return start, end, nil
}

func (dto SubmitLeaveDTO) TrimmedReason() *string {
	reason := strings.TrimSpace(dto.Reason)
	if reason == "" {
		return nil
	}
	return &reason
}

type RejectLeaveDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectLeaveDTO) Validate() error {
	if strings.TrimSpace(dto.Reason) == "" {
		return internal.NewValidationError("a rejection reason is required", internal.ErrCodeMissingRejectionReason)
	}
	return nil
}

// LeaveRequestResponse decorates a request with the display fields list views
// need.
type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	LeaveTypeID     int64      `json:"leave_type_id"`
	LeaveTypeName   string     `json:"leave_type_name,omitempty"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	WorkingDays     int        `json:"working_days"`
	Reason          *string    `json:"reason,omitempty"`
	Status          Status     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToResponse(lr *LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		LeaveTypeID:     lr.LeaveTypeID,
		StartDate:       lr.StartDate.Format(dateLayout),
		EndDate:         lr.EndDate.Format(dateLayout),
		WorkingDays:     lr.WorkingDays(),
		Reason:          lr.Reason,
		Status:          lr.Status,
		RejectionReason: lr.RejectionReason,
		ProcessedAt:     lr.ProcessedAt,
		CreatedAt:       lr.CreatedAt,
	}
}

type LeaveRequestsResponse struct {
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}
