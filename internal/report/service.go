package report

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/leave"
)

type RepositoryAPI interface {
	ListAll(filter Filter) ([]Row, error)
	AggregateByType(employeeID int64) ([]TypeAggregate, error)
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

// ListAllRequests is the HR-wide listing with optional status, type and text
// filters. Non-reviewers are turned away here even if routing let them in.
func (s *Service) ListAllRequests(filter Filter, requester *auth.User) (*ListResponse, error) {
	if !s.checker.CanViewAllLeave(requester.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to view all leave requests", internal.ErrCodeUnauthorizedAccess)
	}

	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, internal.NewValidationError("unknown status filter", internal.ErrCodeValidationFailed)
	}

	rows, err := s.repo.ListAll(filter)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err)
		return nil, internal.NewStorageError(err)
	}

	return &ListResponse{LeaveRequests: rows, Total: len(rows)}, nil
}

// AggregateByType returns per-type outcome counts. employeeID narrows the
// aggregate to one employee; 0 spans everyone. Employees may always see their
// own numbers, company-wide ones need view_all_leave.
func (s *Service) AggregateByType(employeeID int64, requester *auth.User) (*AggregateResponse, error) {
	if employeeID != requester.ID && !s.checker.CanViewAllLeave(requester.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to view other employees' statistics", internal.ErrCodeUnauthorizedAccess)
	}

	aggregates, err := s.repo.AggregateByType(employeeID)
	if err != nil {
		s.logger.Error("failed to aggregate leave requests", "error", err, "employee_id", employeeID)
		return nil, internal.NewStorageError(err)
	}

	return &AggregateResponse{ByType: aggregates}, nil
}

// ExportCSV streams the filtered listing as CSV, one row per request.
func (s *Service) ExportCSV(w io.Writer, filter Filter, requester *auth.User) error {
	listing, err := s.ListAllRequests(filter, requester)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"request_id", "employee", "department", "leave_type", "start_date", "end_date", "working_days", "status", "reason", "rejection_reason", "submitted_at"}
	if err := cw.Write(header); err != nil {
		return internal.NewInternalError("failed to write CSV export", err)
	}

	for _, row := range listing.LeaveRequests {
		record := []string{
			row.RequestID,
			row.EmployeeName,
			row.Department,
			row.LeaveTypeName,
			row.StartDate.Format("2006-01-02"),
			row.EndDate.Format("2006-01-02"),
			strconv.Itoa(row.WorkingDays),
			row.Status,
			derefOrEmpty(row.Reason),
			derefOrEmpty(row.RejectionReason),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return internal.NewInternalError("failed to write CSV export", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return internal.NewInternalError("failed to flush CSV export", err)
	}

	s.logger.Info("leave report exported", "rows", len(listing.LeaveRequests), "requested_by", requester.ID)
	return nil
}

func validStatus(status string) bool {
	switch leave.Status(status) {
	case leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled:
		return true
	}
	return false
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
