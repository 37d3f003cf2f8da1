package report_test

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/report"
)

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Module Suite")
}

// Mock repository applying the same filter semantics as the SQL queries
type mockReportRepository struct {
	rows       []report.Row
	aggregates []report.TypeAggregate
	listError  error
}

func (m *mockReportRepository) ListAll(filter report.Filter) ([]report.Row, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []report.Row
	for _, row := range m.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.LeaveTypeID != 0 && row.LeaveTypeID != filter.LeaveTypeID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			name := strings.ToLower(row.EmployeeName)
			reason := ""
			if row.Reason != nil {
				reason = strings.ToLower(*row.Reason)
			}
			if !strings.Contains(name, needle) && !strings.Contains(reason, needle) {
				continue
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockReportRepository) AggregateByType(employeeID int64) ([]report.TypeAggregate, error) {
	return m.aggregates, nil
}

func strPtr(s string) *string { return &s }

var _ = Describe("ReportService", func() {
	var (
		service  *report.Service
		mockRepo *mockReportRepository
		reviewer *auth.User
		employee *auth.User
	)

	BeforeEach(func() {
		mockRepo = &mockReportRepository{
			rows: []report.Row{
				{
					RequestID:    "r1",
					EmployeeID:   10,
					EmployeeName: "Sari",
					Department:   "Engineering",
					LeaveTypeID:  1,
					LeaveTypeName: "annual",
					StartDate:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
					WorkingDays:  5,
					Reason:       strPtr("summer holiday"),
					Status:       "approved",
					CreatedAt:    time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
				},
				{
					RequestID:    "r2",
					EmployeeID:   11,
					EmployeeName: "Budi",
					Department:   "Finance",
					LeaveTypeID:  2,
					LeaveTypeName: "sick",
					StartDate:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
					WorkingDays:  2,
					Status:       "pending",
					CreatedAt:    time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
				},
			},
			aggregates: []report.TypeAggregate{
				{LeaveTypeID: 1, LeaveTypeName: "annual", Pending: 1, Approved: 3, Rejected: 1, Total: 5},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(mockRepo, auth.NewPermissionChecker(), logger)

		reviewer = &auth.User{ID: 20, Permissions: []string{auth.PermViewAllLeave}}
		employee = &auth.User{ID: 10, Permissions: []string{auth.PermSubmitLeave}}
	})

	Describe("ListAllRequests", func() {
		It("returns everything without filters", func() {
			listing, err := service.ListAllRequests(report.Filter{}, reviewer)

			Expect(err).ToNot(HaveOccurred())
			Expect(listing.Total).To(Equal(2))
		})

		It("filters by status", func() {
			listing, err := service.ListAllRequests(report.Filter{Status: "pending"}, reviewer)

			Expect(err).ToNot(HaveOccurred())
			Expect(listing.Total).To(Equal(1))
			Expect(listing.LeaveRequests[0].RequestID).To(Equal("r2"))
		})

		It("rejects an unknown status filter", func() {
			_, err := service.ListAllRequests(report.Filter{Status: "misfiled"}, reviewer)

			Expect(err).To(HaveOccurred())
		})

		It("matches search text against names and reasons case-insensitively", func() {
			byName, err := service.ListAllRequests(report.Filter{Search: "SARI"}, reviewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(byName.Total).To(Equal(1))

			byReason, err := service.ListAllRequests(report.Filter{Search: "holiday"}, reviewer)
			Expect(err).ToNot(HaveOccurred())
			Expect(byReason.Total).To(Equal(1))
			Expect(byReason.LeaveRequests[0].RequestID).To(Equal("r1"))
		})

		It("refuses users without view_all_leave", func() {
			_, err := service.ListAllRequests(report.Filter{}, employee)

			Expect(err).To(HaveOccurred())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeUnauthorizedAccess))
		})
	})

	Describe("AggregateByType", func() {
		It("lets employees see their own statistics", func() {
			aggregates, err := service.AggregateByType(employee.ID, employee)

			Expect(err).ToNot(HaveOccurred())
			Expect(aggregates.ByType).To(HaveLen(1))
			Expect(aggregates.ByType[0].Approved).To(Equal(int64(3)))
		})

		It("hides company-wide statistics from plain employees", func() {
			_, err := service.AggregateByType(0, employee)

			Expect(err).To(HaveOccurred())
		})

		It("lets reviewers see any scope", func() {
			_, err := service.AggregateByType(0, reviewer)

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("ExportCSV", func() {
		It("writes a header and one record per request", func() {
			var buf bytes.Buffer

			Expect(service.ExportCSV(&buf, report.Filter{}, reviewer)).To(Succeed())

			records, err := csv.NewReader(&buf).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0][0]).To(Equal("request_id"))
			Expect(records[1]).To(ContainElements("Sari", "annual", "2025-06-02", "5", "approved"))
		})

		It("applies the filter to the export", func() {
			var buf bytes.Buffer

			Expect(service.ExportCSV(&buf, report.Filter{Status: "pending"}, reviewer)).To(Succeed())

			records, err := csv.NewReader(&buf).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[1][1]).To(Equal("Budi"))
		})

		It("refuses users without view_all_leave", func() {
			var buf bytes.Buffer

			err := service.ExportCSV(&buf, report.Filter{}, employee)

			Expect(err).To(HaveOccurred())
			Expect(buf.Len()).To(BeZero())
		})
	})
})
