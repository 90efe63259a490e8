package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Payment struct {
	ID uint `gorm:"primaryKey"`

	UserID         uint   `gorm:"not null"`
	Reference      string `gorm:"uniqueIndex;not null"`
	StripeIntentID string `gorm:"uniqueIndex;not null"`
	AmountPaise    int64  `gorm:"not null"`
	Currency       string `gorm:"not null"`
	Status         string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByIntentID(ctx context.Context, intentID string) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "stripe_intent_id = ?", intentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) UpdateStatusByIntentID(ctx context.Context, intentID, status string) error {
	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("stripe_intent_id = ?", intentID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
