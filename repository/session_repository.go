package repository

import (
	"context"
	"time"

	"AdminBackend/models"

	"gorm.io/gorm"
)

// SessionRepository stores the login tokens issued at sign-in.
type SessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

func (r *SessionRepository) Create(ctx context.Context, token *models.LoginToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// SessionActive reports whether an unexpired row exists for tokenID.
func (r *SessionRepository) SessionActive(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("token_id = ? AND expiration_time > ?", tokenID, r.now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the session and reports whether one existed.
func (r *SessionRepository) Delete(ctx context.Context, tokenID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("token_id = ?", tokenID).
		Delete(&models.LoginToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
