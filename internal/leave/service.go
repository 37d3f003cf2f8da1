package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	leaveDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leave"
	"github.com/ruangkerja/leave-management/internal/core/events"
	"github.com/ruangkerja/leave-management/internal/leavetype"
)

type RepositoryAPI interface {
	GetByID(id string) (*leaveDatamodel.LeaveRequest, error)
	Create(request *leaveDatamodel.LeaveRequest) error
	ListByEmployee(employeeID int64) ([]*leaveDatamodel.LeaveRequest, error)
	ListPending() ([]*leaveDatamodel.LeaveRequest, error)
	// UpdateStatus transitions a request only when it is still in fromStatus,
	// returning the number of rows changed. Zero means another reviewer won.
	UpdateStatus(id string, fromStatus, toStatus Status, rejectionReason *string, processedAt time.Time) (int64, error)
}

// TypeCatalog resolves leave types during submission and review.
type TypeCatalog interface {
	GetLeaveTypeByID(id int64) (*leavetype.LeaveType, error)
}

// Ledger is the balance operations the lifecycle drives. Debit happens at
// approval, never at submission; Credit reverses an approved request.
type Ledger interface {
	Available(employeeID, leaveTypeID int64, year int) (int, error)
	Debit(employeeID, leaveTypeID int64, year, days int) error
	Credit(employeeID, leaveTypeID int64, year, days int) error
}

type Service struct {
	repo     RepositoryAPI
	types    TypeCatalog
	ledger   Ledger
	eventBus *events.EventBus
	checker  auth.PermissionChecker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, types TypeCatalog, ledger Ledger, eventBus *events.EventBus, checker auth.PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		types:    types,
		ledger:   ledger,
		eventBus: eventBus,
		checker:  checker,
		logger:   logger,
	}
}

// Submit validates and records a new leave request. Tracked types must have
// enough balance to cover the range up front, but nothing is debited yet; the
// ledger only moves at approval. Types that skip approval are approved and
// debited immediately.
func (s *Service) Submit(employeeID int64, dto SubmitLeaveDTO) (*LeaveRequest, error) {
	start, end, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	t, err := s.types.GetLeaveTypeByID(dto.LeaveTypeID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, leavetype.ErrLeaveTypeNotFound
	}

	reason := dto.TrimmedReason()
	if t.RequiresJustification && reason == nil {
		return nil, internal.NewValidationError("this leave type requires a justification", internal.ErrCodeMissingJustification)
	}

	days := CountWorkingDays(start, end)
	if days == 0 {
		return nil, internal.NewValidationError("the selected range contains no working days", internal.ErrCodeInvalidDateRange)
	}

	if t.BalanceTracked {
		available, err := s.ledger.Available(employeeID, t.ID, start.Year())
		if err != nil {
			return nil, err
		}
		if days > available {
			s.logger.Info("leave submission rejected: insufficient balance",
				"employee_id", employeeID,
				"leave_type", t.Name,
				"requested_days", days,
				"available_days", available)
			return nil, internal.NewUnprocessableError("insufficient leave balance for the requested range", internal.ErrCodeInsufficientBalance)
		}
	}

	request := &leaveDatamodel.LeaveRequest{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		LeaveTypeID: t.ID,
		StartDate:   start,
		EndDate:     end,
		Reason:      reason,
		Status:      string(StatusPending),
	}

	if err := s.repo.Create(request); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "employee_id", employeeID)
		return nil, internal.NewStorageError(err)
	}

	s.logger.Info("leave request submitted",
		"request_id", request.ID,
		"employee_id", employeeID,
		"leave_type", t.Name,
		"working_days", days)
	s.eventBus.Publish(context.Background(), events.NewLeaveSubmittedEvent(request.ID, employeeID, t.ID, days))

	if !t.RequiresApproval {
		return s.approve(FromDataModel(request), t, employeeID)
	}

	return FromDataModel(request), nil
}

// Approve moves a pending request to approved and debits the ledger. The debit
// lands first; if another reviewer resolved the request in the meantime the
// status update affects no rows and the debit is credited back.
func (s *Service) Approve(requestID string, reviewer *auth.User) (*LeaveRequest, error) {
	if !s.checker.CanApproveLeave(reviewer.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to approve leave requests", internal.ErrCodeUnauthorizedAccess)
	}

	request, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if !request.CanBeApproved() {
		return nil, ErrInvalidTransition
	}

	t, err := s.types.GetLeaveTypeByID(request.LeaveTypeID)
	if err != nil {
		return nil, err
	}

	return s.approve(request, t, reviewer.ID)
}

func (s *Service) approve(request *LeaveRequest, t *leavetype.LeaveType, reviewerID int64) (*LeaveRequest, error) {
	days := request.WorkingDays()
	year := request.StartDate.Year()

	if t.BalanceTracked {
		if err := s.ledger.Debit(request.EmployeeID, t.ID, year, days); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	affected, err := s.repo.UpdateStatus(request.ID, StatusPending, StatusApproved, nil, now)
	if err != nil {
		s.creditBack(request, t, days, year)
		s.logger.Error("failed to approve leave request", "error", err, "request_id", request.ID)
		return nil, internal.NewStorageError(err)
	}
	if affected == 0 {
		// lost the race against another reviewer; undo the debit
		s.creditBack(request, t, days, year)
		return nil, ErrInvalidTransition
	}

	request.Status = StatusApproved
	request.ProcessedAt = &now

	s.logger.Info("leave request approved",
		"request_id", request.ID,
		"employee_id", request.EmployeeID,
		"working_days", days,
		"approved_by", reviewerID)
	s.eventBus.Publish(context.Background(), events.NewLeaveApprovedEvent(request.ID, request.EmployeeID, t.ID, days, reviewerID))

	return request, nil
}

func (s *Service) creditBack(request *LeaveRequest, t *leavetype.LeaveType, days, year int) {
	if !t.BalanceTracked {
		return
	}
	if err := s.ledger.Credit(request.EmployeeID, t.ID, year, days); err != nil {
		s.logger.Error("failed to credit back after aborted approval",
			"error", err,
			"request_id", request.ID,
			"days", days)
	}
}

// Reject moves a pending request to rejected. The ledger is never touched:
// nothing was debited while the request was pending.
func (s *Service) Reject(requestID string, dto RejectLeaveDTO, reviewer *auth.User) (*LeaveRequest, error) {
	if !s.checker.CanRejectLeave(reviewer.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to reject leave requests", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	request, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if !request.CanBeRejected() {
		return nil, ErrInvalidTransition
	}

	reason := dto.Reason
	now := time.Now()
	affected, err := s.repo.UpdateStatus(requestID, StatusPending, StatusRejected, &reason, now)
	if err != nil {
		s.logger.Error("failed to reject leave request", "error", err, "request_id", requestID)
		return nil, internal.NewStorageError(err)
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	request.Status = StatusRejected
	request.RejectionReason = &reason
	request.ProcessedAt = &now

	s.logger.Info("leave request rejected",
		"request_id", requestID,
		"employee_id", request.EmployeeID,
		"rejected_by", reviewer.ID)
	s.eventBus.Publish(context.Background(), events.NewLeaveRejectedEvent(requestID, request.EmployeeID, request.LeaveTypeID, reviewer.ID, reason))

	return request, nil
}

// Cancel lets the owner withdraw a request. Cancelling an approved request
// credits its days back to the ledger; a pending one never touched it.
func (s *Service) Cancel(requestID string, employeeID int64) (*LeaveRequest, error) {
	request, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if request.EmployeeID != employeeID {
		return nil, ErrNotRequestOwner
	}
	if !request.CanBeCancelled() {
		return nil, ErrInvalidTransition
	}

	fromStatus := request.Status
	now := time.Now()
	affected, err := s.repo.UpdateStatus(requestID, fromStatus, StatusCancelled, nil, now)
	if err != nil {
		s.logger.Error("failed to cancel leave request", "error", err, "request_id", requestID)
		return nil, internal.NewStorageError(err)
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	days := 0
	if fromStatus == StatusApproved {
		t, err := s.types.GetLeaveTypeByID(request.LeaveTypeID)
		if err != nil {
			return nil, err
		}
		if t.BalanceTracked {
			days = request.WorkingDays()
			if err := s.ledger.Credit(request.EmployeeID, t.ID, request.StartDate.Year(), days); err != nil {
				s.logger.Error("failed to credit cancelled leave", "error", err, "request_id", requestID, "days", days)
				return nil, err
			}
		}
	}

	request.Status = StatusCancelled
	request.ProcessedAt = &now

	s.logger.Info("leave request cancelled",
		"request_id", requestID,
		"employee_id", employeeID,
		"credited_days", days)
	s.eventBus.Publish(context.Background(), events.NewLeaveCancelledEvent(requestID, request.EmployeeID, request.LeaveTypeID, days, employeeID))

	return request, nil
}

// GetLeaveRequest returns a single request, visible to its owner and to
// reviewers holding view_all_leave.
func (s *Service) GetLeaveRequest(requestID string, requester *auth.User) (*LeaveRequest, error) {
	request, err := s.getRequest(requestID)
	if err != nil {
		return nil, err
	}

	if request.EmployeeID != requester.ID && !s.checker.CanViewAllLeave(requester.Permissions) {
		return nil, ErrNotRequestOwner
	}

	return request, nil
}

// ListMyRequests returns the employee's own history, newest first.
func (s *Service) ListMyRequests(employeeID int64) ([]*LeaveRequest, error) {
	rows, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "employee_id", employeeID)
		return nil, internal.NewStorageError(err)
	}
	return fromDataModels(rows), nil
}

// ListPending returns the review queue, oldest first so reviewers work it in
// submission order.
func (s *Service) ListPending(reviewer *auth.User) ([]*LeaveRequest, error) {
	if !s.checker.CanViewAllLeave(reviewer.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to view the review queue", internal.ErrCodeUnauthorizedAccess)
	}

	rows, err := s.repo.ListPending()
	if err != nil {
		s.logger.Error("failed to list pending leave requests", "error", err)
		return nil, internal.NewStorageError(err)
	}
	return fromDataModels(rows), nil
}

func (s *Service) getRequest(requestID string) (*LeaveRequest, error) {
	row, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("failed to load leave request", "error", err, "request_id", requestID)
		return nil, internal.NewStorageError(err)
	}
	if row == nil {
		return nil, ErrLeaveRequestNotFound
	}
	return FromDataModel(row), nil
}

func fromDataModels(rows []*leaveDatamodel.LeaveRequest) []*LeaveRequest {
	requests := make([]*LeaveRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, FromDataModel(row))
	}
	return requests
}
