package leavetype

import "time"

type LeaveType struct {
	ID                    int64     `gorm:"primaryKey"`
	Name                  string    `gorm:"column:name;uniqueIndex;not null"`
	Description           string    `gorm:"column:description"`
	RequiresApproval      bool      `gorm:"column:requires_approval;default:true"`
	RequiresJustification bool      `gorm:"column:requires_justification;default:false"`
	BalanceTracked        bool      `gorm:"column:balance_tracked;default:true"`
	DefaultDays           int       `gorm:"column:default_days;default:0"`
	IsActive              bool      `gorm:"column:is_active;default:true"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
