package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshToken struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint      `gorm:"not null;index"`
	TokenHash string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type RefreshTokenDAO struct {
	db *gorm.DB
}

func NewRefreshTokenDAO(db *gorm.DB) *RefreshTokenDAO {
	return &RefreshTokenDAO{
		db: db,
	}
}

func (d *RefreshTokenDAO) Insert(ctx context.Context, token RefreshToken) (RefreshToken, error) {
	result := d.db.WithContext(ctx).Create(&token)
	if result.Error != nil {
		return RefreshToken{}, result.Error
	}

	return token, nil
}

func (d *RefreshTokenDAO) FindByHash(ctx context.Context, hash string) (RefreshToken, error) {
	var token RefreshToken

	result := d.db.WithContext(ctx).First(&token, "token_hash = ?", hash)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RefreshToken{}, ErrRefreshTokenNotFound
		}

		return RefreshToken{}, result.Error
	}

	return token, nil
}

func (d *RefreshTokenDAO) Revoke(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&RefreshToken{}).Where("id = ?", id).Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}

	return nil
}

func (d *RefreshTokenDAO) RevokeAllForUser(ctx context.Context, userID uint) error {
	return d.db.WithContext(ctx).Model(&RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error
}
