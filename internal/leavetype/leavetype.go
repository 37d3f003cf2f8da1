package leavetype

import (
	"time"

	"github.com/ruangkerja/leave-management/internal"
	leavetypeDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leavetype"
)

// LeaveType is one entry of the leave category catalog. The catalog is edited
// only through administrative setup; requests and ledger entries reference
// types by id.
type LeaveType struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	RequiresApproval      bool      `json:"requires_approval"`
	RequiresJustification bool      `json:"requires_justification"`
	BalanceTracked        bool      `json:"balance_tracked"`
	DefaultDays           int       `json:"default_days"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Well-known catalog names seeded at setup.
const (
	TypeAnnual      = "annual"
	TypeSick        = "sick"
	TypeExceptional = "exceptional"
)

var (
	ErrLeaveTypeNotFound = internal.NewNotFoundError("leave type not found", internal.ErrCodeLeaveTypeNotFound)
	ErrLeaveTypeInUse    = internal.NewConflictError("leave type is referenced by requests or balances", internal.ErrCodeLeaveTypeInUse)
)

func NewLeaveType(dto CreateLeaveTypeDTO) *LeaveType {
	now := time.Now()
	return &LeaveType{
		Name:                  dto.Name,
		Description:           dto.Description,
		RequiresApproval:      dto.RequiresApproval,
		RequiresJustification: dto.RequiresJustification,
		BalanceTracked:        dto.BalanceTracked,
		DefaultDays:           dto.DefaultDays,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func ToDataModel(t *LeaveType) *leavetypeDatamodel.LeaveType {
	return &leavetypeDatamodel.LeaveType{
		ID:                    t.ID,
		Name:                  t.Name,
		Description:           t.Description,
		RequiresApproval:      t.RequiresApproval,
		RequiresJustification: t.RequiresJustification,
		BalanceTracked:        t.BalanceTracked,
		DefaultDays:           t.DefaultDays,
		IsActive:              t.IsActive,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

func FromDataModel(t *leavetypeDatamodel.LeaveType) *LeaveType {
	return &LeaveType{
		ID:                    t.ID,
		Name:                  t.Name,
		Description:           t.Description,
		RequiresApproval:      t.RequiresApproval,
		RequiresJustification: t.RequiresJustification,
		BalanceTracked:        t.BalanceTracked,
		DefaultDays:           t.DefaultDays,
		IsActive:              t.IsActive,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}
