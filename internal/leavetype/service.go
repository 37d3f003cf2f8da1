package leavetype

import (
	"log/slog"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	leavetypeDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leavetype"
)

type RepositoryAPI interface {
	GetAll() ([]*leavetypeDatamodel.LeaveType, error)
	GetByID(id int64) (*leavetypeDatamodel.LeaveType, error)
	GetByName(name string) (*leavetypeDatamodel.LeaveType, error)
	Create(leaveType *leavetypeDatamodel.LeaveType) error
	Update(leaveType *leavetypeDatamodel.LeaveType) error
	Delete(id int64) error
	CountReferences(id int64) (int64, error)
}

type Service struct {
	repo    RepositoryAPI
	checker auth.PermissionChecker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, checker auth.PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

func (s *Service) GetAllLeaveTypes() ([]LeaveTypeResponse, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get leave types from repository", "error", err)
		return nil, internal.NewStorageError(err)
	}

	var responses []LeaveTypeResponse
	for _, record := range records {
		t := FromDataModel(record)
		if t.IsActive {
			responses = append(responses, t.ToResponse())
		}
	}

	return responses, nil
}

func (s *Service) GetLeaveTypeByID(id int64) (*LeaveType, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get leave type", "error", err, "leave_type_id", id)
		return nil, internal.NewStorageError(err)
	}
	if record == nil {
		return nil, ErrLeaveTypeNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetLeaveTypeByName(name string) (*LeaveType, error) {
	record, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to get leave type by name", "error", err, "name", name)
		return nil, internal.NewStorageError(err)
	}
	if record == nil {
		return nil, ErrLeaveTypeNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) CreateLeaveType(dto CreateLeaveTypeDTO, userPermissions []string) (*LeaveType, error) {
	if !s.checker.CanManageLeaveTypes(userPermissions) {
		s.logger.Warn("create leave type denied: insufficient permissions", "permissions", userPermissions)
		return nil, internal.NewForbiddenError("not allowed to manage leave types", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, internal.NewStorageError(err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("a leave type with this name already exists", internal.ErrCodeValidationFailed)
	}

	t := NewLeaveType(dto)
	record := ToDataModel(t)
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create leave type", "error", err, "name", dto.Name)
		return nil, internal.NewStorageError(err)
	}
	t.ID = record.ID

	s.logger.Info("leave type created", "leave_type_id", t.ID, "name", t.Name)
	return t, nil
}

func (s *Service) UpdateLeaveType(id int64, dto UpdateLeaveTypeDTO, userPermissions []string) (*LeaveType, error) {
	if !s.checker.CanManageLeaveTypes(userPermissions) {
		s.logger.Warn("update leave type denied: insufficient permissions", "leave_type_id", id)
		return nil, internal.NewForbiddenError("not allowed to manage leave types", internal.ErrCodeUnauthorizedAccess)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewStorageError(err)
	}
	if record == nil {
		return nil, ErrLeaveTypeNotFound
	}

	record.Description = dto.Description
	record.RequiresApproval = dto.RequiresApproval
	record.RequiresJustification = dto.RequiresJustification
	if dto.IsActive != nil {
		record.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update leave type", "error", err, "leave_type_id", id)
		return nil, internal.NewStorageError(err)
	}

	return FromDataModel(record), nil
}

// DeleteLeaveType removes a catalog entry. Deletion is forbidden while any
// request or ledger entry still references the type.
func (s *Service) DeleteLeaveType(id int64, userPermissions []string) error {
	if !s.checker.CanManageLeaveTypes(userPermissions) {
		s.logger.Warn("delete leave type denied: insufficient permissions", "leave_type_id", id)
		return internal.NewForbiddenError("not allowed to manage leave types", internal.ErrCodeUnauthorizedAccess)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewStorageError(err)
	}
	if record == nil {
		return ErrLeaveTypeNotFound
	}

	refs, err := s.repo.CountReferences(id)
	if err != nil {
		s.logger.Error("failed to count leave type references", "error", err, "leave_type_id", id)
		return internal.NewStorageError(err)
	}
	if refs > 0 {
		s.logger.Warn("delete leave type denied: still referenced", "leave_type_id", id, "references", refs)
		return ErrLeaveTypeInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete leave type", "error", err, "leave_type_id", id)
		return internal.NewStorageError(err)
	}

	s.logger.Info("leave type deleted", "leave_type_id", id)
	return nil
}
