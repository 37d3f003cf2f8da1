package leave

import "time"

type LeaveRequest struct {
	ID              string     `gorm:"primaryKey;type:uuid"`
	EmployeeID      int64      `gorm:"column:employee_id;not null;index"`
	LeaveTypeID     int64      `gorm:"column:leave_type_id;not null;index"`
	StartDate       time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate         time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason          *string    `gorm:"column:reason"`
	Status          string     `gorm:"column:status;default:pending;index"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	ProcessedAt     *time.Time `gorm:"column:processed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
