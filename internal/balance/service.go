package balance

import (
	"log/slog"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
	"github.com/ruangkerja/leave-management/internal/leavetype"
)

// RepositoryAPI is the ledger storage contract. Debit, Credit and SetTotal
// must be atomic read-modify-write operations: the guard condition and the
// counter update happen in a single statement so concurrent callers cannot
// overdraw an entry.
type RepositoryAPI interface {
	GetEntry(employeeID, leaveTypeID int64, year int) (*balanceDatamodel.BalanceEntry, error)
	Create(entry *balanceDatamodel.BalanceEntry) error
	Debit(employeeID, leaveTypeID int64, year, days int) (int64, error)
	Credit(employeeID, leaveTypeID int64, year, days int) (int64, error)
	SetTotal(employeeID, leaveTypeID int64, year, totalDays int) (int64, error)
}

// TypeCatalog is the slice of the leave type registry the ledger needs:
// whether a type is tracked at all and its default entitlement.
type TypeCatalog interface {
	GetLeaveTypeByID(id int64) (*leavetype.LeaveType, error)
	GetLeaveTypeByName(name string) (*leavetype.LeaveType, error)
}

type Service struct {
	repo    RepositoryAPI
	types   TypeCatalog
	checker auth.PermissionChecker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, types TypeCatalog, checker auth.PermissionChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		types:   types,
		checker: checker,
		logger:  logger,
	}
}

// GetBalance returns the ledger entry for (employee, type, year), creating it
// lazily with the type's default entitlement on first reference. Types that
// are not balance-tracked have no entry; asking for one is an error.
func (s *Service) GetBalance(employeeID, leaveTypeID int64, year int) (*Balance, error) {
	t, err := s.types.GetLeaveTypeByID(leaveTypeID)
	if err != nil {
		return nil, err
	}
	if !t.BalanceTracked {
		return nil, ErrTypeNotTracked
	}

	entry, err := s.repo.GetEntry(employeeID, leaveTypeID, year)
	if err != nil {
		s.logger.Error("failed to read ledger entry", "error", err, "employee_id", employeeID, "leave_type_id", leaveTypeID, "year", year)
		return nil, internal.NewStorageError(err)
	}

	if entry == nil {
		entry = &balanceDatamodel.BalanceEntry{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        year,
			TotalDays:   t.DefaultDays,
			UsedDays:    0,
		}
		if err := s.repo.Create(entry); err != nil {
			s.logger.Error("failed to create ledger entry", "error", err, "employee_id", employeeID, "leave_type_id", leaveTypeID)
			return nil, internal.NewStorageError(err)
		}
		s.logger.Info("ledger entry created with defaults",
			"employee_id", employeeID,
			"leave_type", t.Name,
			"year", year,
			"total_days", t.DefaultDays)
	}

	return FromDataModel(entry), nil
}

// Available reports the remaining days for a tracked type.
func (s *Service) Available(employeeID, leaveTypeID int64, year int) (int, error) {
	b, err := s.GetBalance(employeeID, leaveTypeID, year)
	if err != nil {
		return 0, err
	}
	return b.AvailableDays(), nil
}

// GetSummary returns the annual/sick pair the dashboards show. Entries are
// created lazily so a fresh employee sees the defaults immediately.
func (s *Service) GetSummary(employeeID int64, year int) (*SummaryResponse, error) {
	annualType, err := s.types.GetLeaveTypeByName(leavetype.TypeAnnual)
	if err != nil {
		return nil, err
	}
	sickType, err := s.types.GetLeaveTypeByName(leavetype.TypeSick)
	if err != nil {
		return nil, err
	}

	annual, err := s.GetBalance(employeeID, annualType.ID, year)
	if err != nil {
		return nil, err
	}
	sick, err := s.GetBalance(employeeID, sickType.ID, year)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		EmployeeID:  employeeID,
		Year:        year,
		AnnualTotal: annual.TotalDays,
		AnnualUsed:  annual.UsedDays,
		SickTotal:   sick.TotalDays,
		SickUsed:    sick.UsedDays,
	}, nil
}

// SetTotals overwrites the annual and sick entitlements for an employee.
// A total below the days already used is rejected; shrinking an entitlement
// under its consumption would break the ledger invariant.
func (s *Service) SetTotals(employeeID int64, year int, dto UpdateTotalsDTO, userPermissions []string) (*SummaryResponse, error) {
	if !s.checker.CanManageBalances(userPermissions) {
		s.logger.Warn("set totals denied: insufficient permissions", "employee_id", employeeID, "permissions", userPermissions)
		return nil, internal.NewForbiddenError("not allowed to manage balances", internal.ErrCodeUnauthorizedAccess)
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidTotals)
	}

	annualType, err := s.types.GetLeaveTypeByName(leavetype.TypeAnnual)
	if err != nil {
		return nil, err
	}
	sickType, err := s.types.GetLeaveTypeByName(leavetype.TypeSick)
	if err != nil {
		return nil, err
	}

	if err := s.setTotal(employeeID, annualType.ID, year, dto.AnnualTotal); err != nil {
		return nil, err
	}
	if err := s.setTotal(employeeID, sickType.ID, year, dto.SickTotal); err != nil {
		return nil, err
	}

	s.logger.Info("balance totals updated",
		"employee_id", employeeID,
		"year", year,
		"annual_total", dto.AnnualTotal,
		"sick_total", dto.SickTotal)

	return s.GetSummary(employeeID, year)
}

func (s *Service) setTotal(employeeID, leaveTypeID int64, year, total int) error {
	// ensure the entry exists before the conditional update
	if _, err := s.GetBalance(employeeID, leaveTypeID, year); err != nil {
		return err
	}

	affected, err := s.repo.SetTotal(employeeID, leaveTypeID, year, total)
	if err != nil {
		s.logger.Error("failed to set ledger total", "error", err, "employee_id", employeeID, "leave_type_id", leaveTypeID)
		return internal.NewStorageError(err)
	}
	if affected == 0 {
		return ErrInvalidTotals
	}
	return nil
}

// Debit consumes days from a tracked entry. The repository applies the guard
// used_days + days <= total_days atomically; zero affected rows on an existing
// entry means the balance would overdraw.
func (s *Service) Debit(employeeID, leaveTypeID int64, year, days int) error {
	if days <= 0 {
		return internal.NewValidationError("debit must be positive", internal.ErrCodeValidationFailed)
	}

	// lazy-create so a first-time debit sees the defaults
	if _, err := s.GetBalance(employeeID, leaveTypeID, year); err != nil {
		return err
	}

	affected, err := s.repo.Debit(employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("ledger debit failed", "error", err, "employee_id", employeeID, "leave_type_id", leaveTypeID, "days", days)
		return internal.NewStorageError(err)
	}
	if affected == 0 {
		s.logger.Warn("ledger debit rejected: insufficient balance",
			"employee_id", employeeID,
			"leave_type_id", leaveTypeID,
			"year", year,
			"days", days)
		return ErrInsufficientDays
	}

	return nil
}

// Credit returns previously debited days, used when an approved request is
// reversed. It never pushes used_days below zero.
func (s *Service) Credit(employeeID, leaveTypeID int64, year, days int) error {
	if days <= 0 {
		return internal.NewValidationError("credit must be positive", internal.ErrCodeValidationFailed)
	}

	affected, err := s.repo.Credit(employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("ledger credit failed", "error", err, "employee_id", employeeID, "leave_type_id", leaveTypeID, "days", days)
		return internal.NewStorageError(err)
	}
	if affected == 0 {
		return ErrBalanceNotFound
	}

	return nil
}
