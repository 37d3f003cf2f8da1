package employee

import (
	"log/slog"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/balance"
)

type RepositoryAPI interface {
	ListActive() ([]Employee, error)
	GetByID(id int64) (*Employee, error)
}

// BalanceSummaries fills in the per-employee ledger numbers.
type BalanceSummaries interface {
	GetSummary(employeeID int64, year int) (*balance.SummaryResponse, error)
}

type Service struct {
	repo     RepositoryAPI
	balances BalanceSummaries
	checker  auth.PermissionChecker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, balances BalanceSummaries, checker auth.PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		balances: balances,
		checker:  checker,
		logger:   logger,
	}
}

// ListEmployees returns the active directory with each employee's ledger
// summary for the given year. HR only.
func (s *Service) ListEmployees(year int, requester *auth.User) (*ListResponse, error) {
	if !s.checker.IsHR(requester.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to view the employee directory", internal.ErrCodeUnauthorizedAccess)
	}

	employees, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewStorageError(err)
	}

	for i := range employees {
		summary, err := s.balances.GetSummary(employees[i].ID, year)
		if err != nil {
			s.logger.Error("failed to load balance summary", "error", err, "employee_id", employees[i].ID)
			return nil, err
		}
		employees[i].AnnualTotal = summary.AnnualTotal
		employees[i].AnnualUsed = summary.AnnualUsed
		employees[i].SickTotal = summary.SickTotal
		employees[i].SickUsed = summary.SickUsed
	}

	return &ListResponse{Employees: employees, Total: len(employees)}, nil
}

func (s *Service) GetEmployee(id int64, year int, requester *auth.User) (*Employee, error) {
	if id != requester.ID && !s.checker.IsHR(requester.Permissions) {
		return nil, internal.NewForbiddenError("not allowed to view other employees", internal.ErrCodeUnauthorizedAccess)
	}

	employee, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load employee", "error", err, "employee_id", id)
		return nil, internal.NewStorageError(err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	summary, err := s.balances.GetSummary(employee.ID, year)
	if err != nil {
		return nil, err
	}
	employee.AnnualTotal = summary.AnnualTotal
	employee.AnnualUsed = summary.AnnualUsed
	employee.SickTotal = summary.SickTotal
	employee.SickUsed = summary.SickUsed

	return employee, nil
}
