package balance

import "time"

// BalanceEntry is one row of the per-employee, per-type, per-year ledger.
// UsedDays must never exceed TotalDays; available days are always derived as
// TotalDays - UsedDays and never stored.
type BalanceEntry struct {
	ID          int64     `gorm:"primaryKey"`
	EmployeeID  int64     `gorm:"column:employee_id;not null;uniqueIndex:idx_balance_key"`
	LeaveTypeID int64     `gorm:"column:leave_type_id;not null;uniqueIndex:idx_balance_key"`
	Year        int       `gorm:"column:year;not null;uniqueIndex:idx_balance_key"`
	TotalDays   int       `gorm:"column:total_days;not null"`
	UsedDays    int       `gorm:"column:used_days;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BalanceEntry) TableName() string {
	return "leave_balances"
}
