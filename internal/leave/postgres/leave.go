package postgres

import (
	"time"

	leaveDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leave"
	"github.com/ruangkerja/leave-management/internal/leave"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) GetByID(id string) (*leaveDatamodel.LeaveRequest, error) {
	var request leaveDatamodel.LeaveRequest
	err := r.db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *LeaveRepository) Create(request *leaveDatamodel.LeaveRequest) error {
	return r.db.Create(request).Error
}

func (r *LeaveRepository) ListByEmployee(employeeID int64) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListPending returns the review queue oldest first.
func (r *LeaveRepository) ListPending() ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.
		Where("status = ?", string(leave.StatusPending)).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus transitions a request with the previous status as a guard, so
// concurrent reviewers cannot both resolve the same request.
func (r *LeaveRepository) UpdateStatus(id string, fromStatus, toStatus leave.Status, rejectionReason *string, processedAt time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":       string(toStatus),
		"processed_at": processedAt,
	}
	if rejectionReason != nil {
		updates["rejection_reason"] = *rejectionReason
	}

	res := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("id = ? AND status = ?", id, string(fromStatus)).
		Updates(updates)
	return res.RowsAffected, res.Error
}
