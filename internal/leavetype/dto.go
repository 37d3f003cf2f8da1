package leavetype

import "errors"

// CreateLeaveTypeDTO is the payload for adding a catalog entry.
type CreateLeaveTypeDTO struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	RequiresApproval      bool   `json:"requires_approval"`
	RequiresJustification bool   `json:"requires_justification"`
	BalanceTracked        bool   `json:"balance_tracked"`
	DefaultDays           int    `json:"default_days"`
}

func (dto CreateLeaveTypeDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.DefaultDays < 0 {
		return errors.New("default days cannot be negative")
	}
	if dto.BalanceTracked && dto.DefaultDays == 0 {
		return errors.New("balance-tracked types need a default entitlement")
	}
	return nil
}

// UpdateLeaveTypeDTO updates catalog metadata. Tracking and defaults are
// intentionally immutable after creation; existing ledger entries depend on
// them. Deactivation hides a type from new submissions without deleting it.
type UpdateLeaveTypeDTO struct {
	Description           string `json:"description"`
	RequiresApproval      bool   `json:"requires_approval"`
	RequiresJustification bool   `json:"requires_justification"`
	IsActive              *bool  `json:"is_active,omitempty"`
}

type LeaveTypeResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	RequiresApproval      bool   `json:"requires_approval"`
	RequiresJustification bool   `json:"requires_justification"`
	BalanceTracked        bool   `json:"balance_tracked"`
	DefaultDays           int    `json:"default_days"`
}

type LeaveTypesResponse struct {
	LeaveTypes []LeaveTypeResponse `json:"leave_types"`
}

func (t *LeaveType) ToResponse() LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		Description:           t.Description,
		RequiresApproval:      t.RequiresApproval,
		RequiresJustification: t.RequiresJustification,
		BalanceTracked:        t.BalanceTracked,
		DefaultDays:           t.DefaultDays,
	}
}
