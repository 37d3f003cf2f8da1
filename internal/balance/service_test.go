package balance_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/balance"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
	"github.com/ruangkerja/leave-management/internal/leavetype"
)

func TestBalance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Balance Module Suite")
}

type entryKey struct {
	employeeID  int64
	leaveTypeID int64
	year        int
}

// Mock repository enforcing the same guards as the SQL statements
type mockBalanceRepository struct {
	entries     map[entryKey]*balanceDatamodel.BalanceEntry
	nextID      int64
	getError    error
	createError error
}

func newMockBalanceRepository() *mockBalanceRepository {
	return &mockBalanceRepository{
		entries: make(map[entryKey]*balanceDatamodel.BalanceEntry),
		nextID:  1,
	}
}

func (m *mockBalanceRepository) GetEntry(employeeID, leaveTypeID int64, year int) (*balanceDatamodel.BalanceEntry, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.entries[entryKey{employeeID, leaveTypeID, year}], nil
}

func (m *mockBalanceRepository) Create(entry *balanceDatamodel.BalanceEntry) error {
	if m.createError != nil {
		return m.createError
	}
	entry.ID = m.nextID
	m.nextID++
	m.entries[entryKey{entry.EmployeeID, entry.LeaveTypeID, entry.Year}] = entry
	return nil
}

func (m *mockBalanceRepository) Debit(employeeID, leaveTypeID int64, year, days int) (int64, error) {
	entry, exists := m.entries[entryKey{employeeID, leaveTypeID, year}]
	if !exists || entry.UsedDays+days > entry.TotalDays {
		return 0, nil
	}
	entry.UsedDays += days
	return 1, nil
}

func (m *mockBalanceRepository) Credit(employeeID, leaveTypeID int64, year, days int) (int64, error) {
	entry, exists := m.entries[entryKey{employeeID, leaveTypeID, year}]
	if !exists || entry.UsedDays < days {
		return 0, nil
	}
	entry.UsedDays -= days
	return 1, nil
}

func (m *mockBalanceRepository) SetTotal(employeeID, leaveTypeID int64, year, totalDays int) (int64, error) {
	entry, exists := m.entries[entryKey{employeeID, leaveTypeID, year}]
	if !exists || entry.UsedDays > totalDays {
		return 0, nil
	}
	entry.TotalDays = totalDays
	return 1, nil
}

type mockTypeCatalog struct {
	byID   map[int64]*leavetype.LeaveType
	byName map[string]*leavetype.LeaveType
}

func newMockTypeCatalog() *mockTypeCatalog {
	annual := &leavetype.LeaveType{ID: 1, Name: "annual", BalanceTracked: true, DefaultDays: 25, IsActive: true}
	sick := &leavetype.LeaveType{ID: 2, Name: "sick", BalanceTracked: true, DefaultDays: 15, IsActive: true}
	exceptional := &leavetype.LeaveType{ID: 3, Name: "exceptional", BalanceTracked: false, IsActive: true}

	return &mockTypeCatalog{
		byID:   map[int64]*leavetype.LeaveType{1: annual, 2: sick, 3: exceptional},
		byName: map[string]*leavetype.LeaveType{"annual": annual, "sick": sick, "exceptional": exceptional},
	}
}

func (m *mockTypeCatalog) GetLeaveTypeByID(id int64) (*leavetype.LeaveType, error) {
	t, exists := m.byID[id]
	if !exists {
		return nil, leavetype.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (m *mockTypeCatalog) GetLeaveTypeByName(name string) (*leavetype.LeaveType, error) {
	t, exists := m.byName[name]
	if !exists {
		return nil, leavetype.ErrLeaveTypeNotFound
	}
	return t, nil
}

var _ = Describe("BalanceService", func() {
	var (
		service  *balance.Service
		mockRepo *mockBalanceRepository
		hrPerms  []string
	)

	const (
		employeeID = int64(10)
		year       = 2025
	)

	BeforeEach(func() {
		mockRepo = newMockBalanceRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = balance.NewService(mockRepo, newMockTypeCatalog(), auth.NewPermissionChecker(), logger)
		hrPerms = []string{auth.PermManageBalances}
	})

	Describe("GetBalance", func() {
		It("creates a missing entry from the type defaults", func() {
			b, err := service.GetBalance(employeeID, 1, year)

			Expect(err).ToNot(HaveOccurred())
			Expect(b.TotalDays).To(Equal(25))
			Expect(b.UsedDays).To(Equal(0))
			Expect(b.AvailableDays()).To(Equal(25))
		})

		It("returns the stored entry on later reads", func() {
			_, err := service.GetBalance(employeeID, 1, year)
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Debit(employeeID, 1, year, 3)).To(Succeed())

			b, err := service.GetBalance(employeeID, 1, year)

			Expect(err).ToNot(HaveOccurred())
			Expect(b.UsedDays).To(Equal(3))
			Expect(b.AvailableDays()).To(Equal(22))
		})

		It("refuses untracked types", func() {
			_, err := service.GetBalance(employeeID, 3, year)

			Expect(err).To(HaveOccurred())
		})

		It("keeps years separate", func() {
			Expect(service.Debit(employeeID, 1, year, 10)).To(Succeed())

			next, err := service.GetBalance(employeeID, 1, year+1)

			Expect(err).ToNot(HaveOccurred())
			Expect(next.UsedDays).To(Equal(0))
			Expect(next.TotalDays).To(Equal(25))
		})
	})

	Describe("Debit", func() {
		It("consumes available days", func() {
			Expect(service.Debit(employeeID, 1, year, 5)).To(Succeed())

			b, err := service.GetBalance(employeeID, 1, year)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.AvailableDays()).To(Equal(20))
		})

		It("refuses to overdraw", func() {
			Expect(service.Debit(employeeID, 1, year, 20)).To(Succeed())

			err := service.Debit(employeeID, 1, year, 6)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInsufficientBalance))
		})

		It("rejects non-positive amounts", func() {
			Expect(service.Debit(employeeID, 1, year, 0)).ToNot(Succeed())
			Expect(service.Debit(employeeID, 1, year, -2)).ToNot(Succeed())
		})
	})

	Describe("Credit", func() {
		It("returns previously debited days", func() {
			Expect(service.Debit(employeeID, 1, year, 5)).To(Succeed())

			Expect(service.Credit(employeeID, 1, year, 5)).To(Succeed())

			b, err := service.GetBalance(employeeID, 1, year)
			Expect(err).ToNot(HaveOccurred())
			Expect(b.UsedDays).To(Equal(0))
		})

		It("never pushes used days below zero", func() {
			_, err := service.GetBalance(employeeID, 1, year)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Credit(employeeID, 1, year, 1)).ToNot(Succeed())
		})
	})

	Describe("GetSummary", func() {
		It("returns annual and sick entries with defaults for a fresh employee", func() {
			summary, err := service.GetSummary(employeeID, year)

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.AnnualTotal).To(Equal(25))
			Expect(summary.SickTotal).To(Equal(15))
			Expect(summary.AnnualUsed).To(Equal(0))
			Expect(summary.SickUsed).To(Equal(0))
		})
	})

	Describe("SetTotals", func() {
		It("overwrites both entitlements", func() {
			summary, err := service.SetTotals(employeeID, year, balance.UpdateTotalsDTO{AnnualTotal: 30, SickTotal: 10}, hrPerms)

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.AnnualTotal).To(Equal(30))
			Expect(summary.SickTotal).To(Equal(10))
		})

		It("refuses callers without manage_balances", func() {
			_, err := service.SetTotals(employeeID, year, balance.UpdateTotalsDTO{AnnualTotal: 30, SickTotal: 10}, []string{auth.PermSubmitLeave})

			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeUnauthorizedAccess))
		})

		It("rejects negative totals", func() {
			_, err := service.SetTotals(employeeID, year, balance.UpdateTotalsDTO{AnnualTotal: -1, SickTotal: 10}, hrPerms)

			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTotals))
		})

		It("rejects totals below the days already used", func() {
			Expect(service.Debit(employeeID, 1, year, 12)).To(Succeed())

			_, err := service.SetTotals(employeeID, year, balance.UpdateTotalsDTO{AnnualTotal: 10, SickTotal: 15}, hrPerms)

			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTotals))
		})
	})
})
