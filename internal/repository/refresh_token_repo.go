package repository

import (
	"context"
	"errors"

	"luwakpos/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByDigest returns the newest row for a digest regardless of its
	// revoked flag, so a replayed (already rotated) token can be told apart
	// from one that never existed.
	FindByDigest(ctx context.Context, digest string) (*entity.RefreshToken, error)

	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeByDigest(ctx context.Context, digest string) (int64, error)
	RevokeAllBySession(ctx context.Context, sessionID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, t *entity.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *refreshTokenRepository) FindByDigest(ctx context.Context, digest string) (*entity.RefreshToken, error) {
	var token entity.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_digest = ?", digest).
		Order("created_at DESC").
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).
		Error
}

// RevokeByDigest revokes every live row matching the digest and reports how
// many rows were touched. Logout uses this; zero rows is not an error.
func (r *refreshTokenRepository) RevokeByDigest(ctx context.Context, digest string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("token_digest = ? AND revoked = false", digest).
		Update("revoked", true)
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) RevokeAllBySession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("session_id = ? AND revoked = false", sessionID).
		Update("revoked", true).
		Error
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < NOW()").
		Delete(&entity.RefreshToken{}).
		Error
}
