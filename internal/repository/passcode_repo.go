package repository

import (
	"context"
	"errors"

	"luwakpos/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PasscodeRepository interface {
	Create(ctx context.Context, passcode *entity.Passcode) error

	// FindLatest returns the most recently issued row for a target. Older
	// rows are implicitly superseded; callers never see them.
	FindLatest(ctx context.Context, passObject string) (*entity.Passcode, error)

	Revoke(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}

type passcodeRepository struct {
	db *gorm.DB
}

func NewPasscodeRepository(db *gorm.DB) PasscodeRepository {
	return &passcodeRepository{db: db}
}

func (r *passcodeRepository) Create(ctx context.Context, p *entity.Passcode) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *passcodeRepository) FindLatest(ctx context.Context, passObject string) (*entity.Passcode, error) {
	var passcode entity.Passcode
	err := r.db.WithContext(ctx).
		Where("pass_object = ?", passObject).
		Order("created_at DESC").
		First(&passcode).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &passcode, err
}

func (r *passcodeRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Passcode{}).
		Where("id = ?", id).
		Update("revoked", true).
		Error
}

func (r *passcodeRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("valid_until < NOW()").
		Delete(&entity.Passcode{}).
		Error
}
