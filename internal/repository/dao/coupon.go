package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCouponNotFound        = errors.New("coupon not found")
	ErrCouponCodeExists      = errors.New("coupon code already exists")
	ErrCouponAlreadyRedeemed = errors.New("coupon already redeemed by this user")
	ErrCouponExhausted       = errors.New("coupon redemption limit reached")
)

type Coupon struct {
	ID uint `gorm:"primaryKey"`

	Code            string    `gorm:"uniqueIndex;not null"`
	DiscountPercent int       `gorm:"not null"`
	MaxRedemptions  int       `gorm:"not null"`
	Redeemed        int       `gorm:"not null;default:0"`
	ExpiresAt       time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type CouponRedemption struct {
	ID uint `gorm:"primaryKey"`

	CouponID uint `gorm:"not null;uniqueIndex:idx_coupon_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_coupon_user"`

	CreatedAt time.Time `gorm:"not null"`
}

type CouponDAO struct {
	db *gorm.DB
}

func NewCouponDAO(db *gorm.DB) *CouponDAO {
	return &CouponDAO{
		db: db,
	}
}

func (d *CouponDAO) Insert(ctx context.Context, coupon Coupon) (Coupon, error) {
	result := d.db.WithContext(ctx).Create(&coupon)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Coupon{}, ErrCouponCodeExists
		}

		return Coupon{}, result.Error
	}

	return coupon, nil
}

func (d *CouponDAO) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var coupon Coupon

	result := d.db.WithContext(ctx).First(&coupon, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Coupon{}, ErrCouponNotFound
		}

		return Coupon{}, result.Error
	}

	return coupon, nil
}

// Redeem records a redemption inside one transaction: the per-user
// uniqueness and the global budget are both enforced here, not by the
// caller.
func (d *CouponDAO) Redeem(ctx context.Context, couponID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		redemption := CouponRedemption{CouponID: couponID, UserID: userID}
		if err := tx.Create(&redemption).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrCouponAlreadyRedeemed
			}

			return err
		}

		result := tx.Model(&Coupon{}).
			Where("id = ? AND (max_redemptions = 0 OR redeemed < max_redemptions)", couponID).
			Update("redeemed", gorm.Expr("redeemed + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCouponExhausted
		}

		return nil
	})
}
