package postgres

import (
	"strings"
	"time"

	"github.com/ruangkerja/leave-management/internal/leave"
	"github.com/ruangkerja/leave-management/internal/report"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

type listRow struct {
	RequestID       string
	EmployeeID      int64
	EmployeeName    string
	Department      string
	LeaveTypeID     int64
	LeaveTypeName   string
	StartDate       time.Time
	EndDate         time.Time
	Reason          *string
	Status          string
	RejectionReason *string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
}

func (r *ReportRepository) ListAll(filter report.Filter) ([]report.Row, error) {
	query := r.db.Table("leave_requests lr").
		Select(`lr.id AS request_id,
			lr.employee_id,
			u.name AS employee_name,
			u.department,
			lr.leave_type_id,
			lt.name AS leave_type_name,
			lr.start_date,
			lr.end_date,
			lr.reason,
			lr.status,
			lr.rejection_reason,
			lr.processed_at,
			lr.created_at`).
		Joins("JOIN users u ON u.id = lr.employee_id").
		Joins("JOIN leave_types lt ON lt.id = lr.leave_type_id").
		Order("lr.created_at DESC")

	if filter.Status != "" {
		query = query.Where("lr.status = ?", filter.Status)
	}
	if filter.LeaveTypeID != 0 {
		query = query.Where("lr.leave_type_id = ?", filter.LeaveTypeID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(u.name) LIKE ? OR LOWER(COALESCE(lr.reason, '')) LIKE ?", pattern, pattern)
	}

	var rows []listRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]report.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.Row{
			RequestID:       row.RequestID,
			EmployeeID:      row.EmployeeID,
			EmployeeName:    row.EmployeeName,
			Department:      row.Department,
			LeaveTypeID:     row.LeaveTypeID,
			LeaveTypeName:   row.LeaveTypeName,
			StartDate:       row.StartDate,
			EndDate:         row.EndDate,
			WorkingDays:     leave.CountWorkingDays(row.StartDate, row.EndDate),
			Reason:          row.Reason,
			Status:          row.Status,
			RejectionReason: row.RejectionReason,
			ProcessedAt:     row.ProcessedAt,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, nil
}

// AggregateByType splits request counts per leave type and outcome. Cancelled
// requests count toward the total but have no dedicated column.
func (r *ReportRepository) AggregateByType(employeeID int64) ([]report.TypeAggregate, error) {
	query := r.db.Table("leave_requests lr").
		Select(`lr.leave_type_id,
			lt.name AS leave_type_name,
			SUM(CASE WHEN lr.status = 'pending' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN lr.status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN lr.status = 'rejected' THEN 1 ELSE 0 END) AS rejected,
			COUNT(*) AS total`).
		Joins("JOIN leave_types lt ON lt.id = lr.leave_type_id").
		Group("lr.leave_type_id, lt.name").
		Order("lt.name ASC")

	if employeeID != 0 {
		query = query.Where("lr.employee_id = ?", employeeID)
	}

	var aggregates []report.TypeAggregate
	if err := query.Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}
