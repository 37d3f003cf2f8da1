package leave

import (
	"time"

	"github.com/ruangkerja/leave-management/internal"
	leaveDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leave"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// LeaveRequest is one request moving through the lifecycle. Dates are
// inclusive; WorkingDays is derived from them on the fly, never stored.
type LeaveRequest struct {
	ID              string     `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	LeaveTypeID     int64      `json:"leave_type_id"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Reason          *string    `json:"reason,omitempty"`
	Status          Status     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// WorkingDays is the number of days the request consumes.
func (lr *LeaveRequest) WorkingDays() int {
	return CountWorkingDays(lr.StartDate, lr.EndDate)
}

func (lr *LeaveRequest) IsPending() bool {
	return lr.Status == StatusPending
}

// IsTerminal reports whether the request has left the pending state. Approved,
// rejected and cancelled requests never transition again.
func (lr *LeaveRequest) IsTerminal() bool {
	return lr.Status != StatusPending
}

func (lr *LeaveRequest) CanBeApproved() bool {
	return lr.Status == StatusPending
}

func (lr *LeaveRequest) CanBeRejected() bool {
	return lr.Status == StatusPending
}

// CanBeCancelled allows the owner to withdraw a request that has not been
// rejected. Cancelling an approved request credits its days back.
func (lr *LeaveRequest) CanBeCancelled() bool {
	return lr.Status == StatusPending || lr.Status == StatusApproved
}

var (
	ErrLeaveRequestNotFound = internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveRequestNotFound)
	ErrInvalidTransition    = internal.NewConflictError("leave request already processed", internal.ErrCodeInvalidTransition)
	ErrNotRequestOwner      = internal.NewForbiddenError("not the owner of this leave request", internal.ErrCodeUnauthorizedAccess)
)

func ToDataModel(lr *LeaveRequest) *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		LeaveTypeID:     lr.LeaveTypeID,
		StartDate:       lr.StartDate,
		EndDate:         lr.EndDate,
		Reason:          lr.Reason,
		Status:          string(lr.Status),
		RejectionReason: lr.RejectionReason,
		ProcessedAt:     lr.ProcessedAt,
		CreatedAt:       lr.CreatedAt,
		UpdatedAt:       lr.UpdatedAt,
	}
}

func FromDataModel(m *leaveDatamodel.LeaveRequest) *LeaveRequest {
	return &LeaveRequest{
		ID:              m.ID,
		EmployeeID:      m.EmployeeID,
		LeaveTypeID:     m.LeaveTypeID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Reason:          m.Reason,
		Status:          Status(m.Status),
		RejectionReason: m.RejectionReason,
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
