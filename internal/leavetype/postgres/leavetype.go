package postgres

import (
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
	leaveDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leave"
	leavetypeDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leavetype"
	"github.com/ruangkerja/leave-management/internal/leavetype"
	"gorm.io/gorm"
)

type LeaveTypeRepository struct {
	db *gorm.DB
}

func NewLeaveTypeRepository(db *gorm.DB) leavetype.RepositoryAPI {
	return &LeaveTypeRepository{db: db}
}

func (r *LeaveTypeRepository) GetAll() ([]*leavetypeDatamodel.LeaveType, error) {
	var types []*leavetypeDatamodel.LeaveType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *LeaveTypeRepository) GetByID(id int64) (*leavetypeDatamodel.LeaveType, error) {
	var t leavetypeDatamodel.LeaveType
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *LeaveTypeRepository) GetByName(name string) (*leavetypeDatamodel.LeaveType, error) {
	var t leavetypeDatamodel.LeaveType
	err := r.db.Where("name = ?", name).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *LeaveTypeRepository) Create(t *leavetypeDatamodel.LeaveType) error {
	return r.db.Create(t).Error
}

func (r *LeaveTypeRepository) Update(t *leavetypeDatamodel.LeaveType) error {
	return r.db.Save(t).Error
}

func (r *LeaveTypeRepository) Delete(id int64) error {
	return r.db.Delete(&leavetypeDatamodel.LeaveType{}, id).Error
}

// CountReferences reports how many requests and ledger entries still point at
// the type. Deletion is only legal when this is zero.
func (r *LeaveTypeRepository) CountReferences(id int64) (int64, error) {
	var requests int64
	if err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("leave_type_id = ?", id).
		Count(&requests).Error; err != nil {
		return 0, err
	}

	var balances int64
	if err := r.db.Model(&balanceDatamodel.BalanceEntry{}).
		Where("leave_type_id = ?", id).
		Count(&balances).Error; err != nil {
		return 0, err
	}

	return requests + balances, nil
}
