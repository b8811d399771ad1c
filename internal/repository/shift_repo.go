package repository

import (
	"context"
	"errors"
	"time"

	"luwakpos/internal/entity"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	FindByID(ctx context.Context, id int64) (*entity.Shift, error)
	FindOpenByUser(ctx context.Context, userID int64) (*entity.Shift, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Shift, error)
	Close(ctx context.Context, id int64, at time.Time) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, s *entity.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepository) FindByID(ctx context.Context, id int64) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&shift).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) FindOpenByUser(ctx context.Context, userID int64) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fin IS NULL", userID).
		Order("inicio DESC").
		First(&shift).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Shift, error) {
	var shifts []entity.Shift
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("inicio DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepository) Close(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Shift{}).
		Where("id = ?", id).
		Update("fin", &at).
		Error
}
