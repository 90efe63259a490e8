package repository

import (
	"context"
	"fmt"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository/dao"
)

var (
	ErrCouponNotFound        = dao.ErrCouponNotFound
	ErrCouponCodeExists      = dao.ErrCouponCodeExists
	ErrCouponAlreadyRedeemed = dao.ErrCouponAlreadyRedeemed
	ErrCouponExhausted       = dao.ErrCouponExhausted
)

type CouponDAO interface {
	Insert(ctx context.Context, coupon dao.Coupon) (dao.Coupon, error)
	FindByCode(ctx context.Context, code string) (dao.Coupon, error)
	Redeem(ctx context.Context, couponID, userID uint) error
}

type CouponRepository struct {
	dao CouponDAO
}

func NewCouponRepository(dao CouponDAO) *CouponRepository {
	return &CouponRepository{
		dao: dao,
	}
}

func (r *CouponRepository) Create(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	created, err := r.dao.Insert(ctx, dao.Coupon{
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		MaxRedemptions:  coupon.MaxRedemptions,
		ExpiresAt:       coupon.ExpiresAt,
	})
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return couponDaoToDomain(created), nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return couponDaoToDomain(found), nil
}

func (r *CouponRepository) Redeem(ctx context.Context, couponID, userID uint) error {
	if err := r.dao.Redeem(ctx, couponID, userID); err != nil {
		return fmt.Errorf("r.dao.Redeem -> %w", err)
	}

	return nil
}

func couponDaoToDomain(c dao.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:              c.ID,
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		MaxRedemptions:  c.MaxRedemptions,
		Redeemed:        c.Redeemed,
		ExpiresAt:       c.ExpiresAt,
		CreatedAt:       c.CreatedAt,
	}
}
