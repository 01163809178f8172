package repository

import (
	"context"
	"time"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error

	// Consume marks the row revoked and returns its owner, but only if the
	// row is still valid at the moment of the update. An unknown, already
	// consumed, revoked or expired hash returns gorm.ErrRecordNotFound.
	// Concurrent calls on the same hash succeed at most once.
	Consume(ctx context.Context, tokenHash string) (string, error)

	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	return xcontext.DB(ctx).Create(token).Error
}

func (r *refreshTokenRepository) Consume(ctx context.Context, tokenHash string) (string, error) {
	now := time.Now()

	// A single conditional UPDATE keeps the check and the revocation atomic.
	// The hash column is unique, so at most one row matches.
	tx := xcontext.DB(ctx).Model(&entity.RefreshToken{}).
		Where("token_hash=? AND revoked_at IS NULL AND expires_at>?", tokenHash, now).
		Update("revoked_at", now)

	if tx.Error != nil {
		return "", tx.Error
	}

	if tx.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}

	var record entity.RefreshToken
	if err := xcontext.DB(ctx).Take(&record, "token_hash=?", tokenHash).Error; err != nil {
		return "", err
	}

	return record.UserID, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	return xcontext.DB(ctx).Model(&entity.RefreshToken{}).
		Where("token_hash=? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", time.Now()).Error
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Model(&entity.RefreshToken{}).
		Where("user_id=? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired removes rows that can no longer be consumed. Correctness does
// not depend on running this.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := xcontext.DB(ctx).Unscoped().
		Delete(&entity.RefreshToken{}, "expires_at<=?", time.Now())

	return tx.RowsAffected, tx.Error
}
