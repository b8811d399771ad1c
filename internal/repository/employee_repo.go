package repository

import (
	"context"
	"errors"

	"luwakpos/internal/entity"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	FindByID(ctx context.Context, id int64) (*entity.Employee, error)
	FindByUserID(ctx context.Context, userID int64) (*entity.Employee, error)
	FindByDNI(ctx context.Context, dni string) (*entity.Employee, error)
	List(ctx context.Context, limit int) ([]entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id int64) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&employee).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&employee).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) FindByDNI(ctx context.Context, dni string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).
		Where("dni = ?", dni).
		First(&employee).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) List(ctx context.Context, limit int) ([]entity.Employee, error) {
	var employees []entity.Employee
	query := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}
