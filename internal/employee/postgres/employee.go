package postgres

import (
	userDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/user"
	"github.com/ruangkerja/leave-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) ListActive() ([]employee.Employee, error) {
	var users []userDatamodel.User
	err := r.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(users))
	for _, u := range users {
		employees = append(employees, toEmployee(&u))
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	e := toEmployee(&u)
	return &e, nil
}

func toEmployee(u *userDatamodel.User) employee.Employee {
	return employee.Employee{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Department: u.Department,
	}
}
