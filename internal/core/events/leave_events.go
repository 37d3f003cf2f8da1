package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveSubmitted = "leave.submitted"
	EventTypeLeaveApproved  = "leave.approved"
	EventTypeLeaveRejected  = "leave.rejected"
	EventTypeLeaveCancelled = "leave.cancelled"
)

type LeaveSubmittedEvent struct {
	BaseEvent
	RequestID   string `json:"request_id"`
	EmployeeID  int64  `json:"employee_id"`
	LeaveTypeID int64  `json:"leave_type_id"`
	Days        int    `json:"days"`
}

func NewLeaveSubmittedEvent(requestID string, employeeID, leaveTypeID int64, days int) *LeaveSubmittedEvent {
	return &LeaveSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":    requestID,
				"employee_id":   employeeID,
				"leave_type_id": leaveTypeID,
				"days":          days,
			},
		},
		RequestID:   requestID,
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Days:        days,
	}
}

// LeaveResolvedEvent is shared by approval, rejection and cancellation. The
// debited or credited day count is snapshotted here so downstream consumers do
// not recompute it from the request dates.
type LeaveResolvedEvent struct {
	BaseEvent
	RequestID   string `json:"request_id"`
	EmployeeID  int64  `json:"employee_id"`
	LeaveTypeID int64  `json:"leave_type_id"`
	Days        int    `json:"days"`
	ResolvedBy  int64  `json:"resolved_by"`
	Reason      string `json:"reason,omitempty"`
}

func newLeaveResolvedEvent(eventType, requestID string, employeeID, leaveTypeID int64, days int, resolvedBy int64, reason string) *LeaveResolvedEvent {
	return &LeaveResolvedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":    requestID,
				"employee_id":   employeeID,
				"leave_type_id": leaveTypeID,
				"days":          days,
				"resolved_by":   resolvedBy,
				"reason":        reason,
			},
		},
		RequestID:   requestID,
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Days:        days,
		ResolvedBy:  resolvedBy,
		Reason:      reason,
	}
}

func NewLeaveApprovedEvent(requestID string, employeeID, leaveTypeID int64, days int, approvedBy int64) *LeaveResolvedEvent {
	return newLeaveResolvedEvent(EventTypeLeaveApproved, requestID, employeeID, leaveTypeID, days, approvedBy, "")
}

func NewLeaveRejectedEvent(requestID string, employeeID, leaveTypeID int64, rejectedBy int64, reason string) *LeaveResolvedEvent {
	return newLeaveResolvedEvent(EventTypeLeaveRejected, requestID, employeeID, leaveTypeID, 0, rejectedBy, reason)
}

func NewLeaveCancelledEvent(requestID string, employeeID, leaveTypeID int64, days int, cancelledBy int64) *LeaveResolvedEvent {
	return newLeaveResolvedEvent(EventTypeLeaveCancelled, requestID, employeeID, leaveTypeID, days, cancelledBy, "")
}
