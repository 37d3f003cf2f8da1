package postgres

import (
	"github.com/ruangkerja/leave-management/internal/balance"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
	"gorm.io/gorm"
)

type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) balance.RepositoryAPI {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetEntry(employeeID, leaveTypeID int64, year int) (*balanceDatamodel.BalanceEntry, error) {
	var entry balanceDatamodel.BalanceEntry
	err := r.db.
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *BalanceRepository) Create(entry *balanceDatamodel.BalanceEntry) error {
	return r.db.Create(entry).Error
}

// Debit increments used_days only while the entry can still cover the draw.
// The guard and the increment are one UPDATE, so two approvals racing over the
// same entry cannot both succeed past the entitlement.
func (r *BalanceRepository) Debit(employeeID, leaveTypeID int64, year, days int) (int64, error) {
	res := r.db.Model(&balanceDatamodel.BalanceEntry{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ? AND used_days + ? <= total_days",
			employeeID, leaveTypeID, year, days).
		UpdateColumn("used_days", gorm.Expr("used_days + ?", days))
	return res.RowsAffected, res.Error
}

// Credit returns days to the entry, clamped so used_days never goes negative.
func (r *BalanceRepository) Credit(employeeID, leaveTypeID int64, year, days int) (int64, error) {
	res := r.db.Model(&balanceDatamodel.BalanceEntry{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ? AND used_days >= ?",
			employeeID, leaveTypeID, year, days).
		UpdateColumn("used_days", gorm.Expr("used_days - ?", days))
	return res.RowsAffected, res.Error
}

// SetTotal overwrites the entitlement, refusing totals below what is already
// used.
func (r *BalanceRepository) SetTotal(employeeID, leaveTypeID int64, year, totalDays int) (int64, error) {
	res := r.db.Model(&balanceDatamodel.BalanceEntry{}).
		Where("employee_id = ? AND leave_type_id = ? AND year = ? AND used_days <= ?",
			employeeID, leaveTypeID, year, totalDays).
		UpdateColumn("total_days", totalDays)
	return res.RowsAffected, res.Error
}
