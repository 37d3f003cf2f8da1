package balance

import (
	"time"

	"github.com/ruangkerja/leave-management/internal"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
)

// Balance is one ledger entry: entitlement vs. consumption for an employee,
// leave type and calendar year. Available days are derived, never stored, so
// the two counters cannot drift apart.
type Balance struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employee_id"`
	LeaveTypeID int64     `json:"leave_type_id"`
	Year        int       `json:"year"`
	TotalDays   int       `json:"total_days"`
	UsedDays    int       `json:"used_days"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Balance) AvailableDays() int {
	return b.TotalDays - b.UsedDays
}

var (
	ErrBalanceNotFound    = internal.NewNotFoundError("leave balance not found", internal.ErrCodeBalanceNotFound)
	ErrInsufficientDays   = internal.NewUnprocessableError("insufficient leave balance", internal.ErrCodeInsufficientBalance)
	ErrInvalidTotals      = internal.NewValidationError("totals must be non-negative and cover days already used", internal.ErrCodeInvalidTotals)
	ErrTypeNotTracked     = internal.NewValidationError("leave type is not balance-tracked", internal.ErrCodeValidationFailed)
)

func ToDataModel(b *Balance) *balanceDatamodel.BalanceEntry {
	return &balanceDatamodel.BalanceEntry{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		LeaveTypeID: b.LeaveTypeID,
		Year:        b.Year,
		TotalDays:   b.TotalDays,
		UsedDays:    b.UsedDays,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromDataModel(e *balanceDatamodel.BalanceEntry) *Balance {
	return &Balance{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		LeaveTypeID: e.LeaveTypeID,
		Year:        e.Year,
		TotalDays:   e.TotalDays,
		UsedDays:    e.UsedDays,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
