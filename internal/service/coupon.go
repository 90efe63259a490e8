package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/repository"
)

var (
	ErrCouponNotFound        = repository.ErrCouponNotFound
	ErrCouponCodeExists      = repository.ErrCouponCodeExists
	ErrCouponAlreadyRedeemed = repository.ErrCouponAlreadyRedeemed
	ErrCouponExhausted       = repository.ErrCouponExhausted
	ErrCouponExpired         = errors.New("coupon has expired")
)

type CouponRepository interface {
	Create(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	Redeem(ctx context.Context, couponID, userID uint) error
}

type CouponService struct {
	repo CouponRepository
}

func NewCouponService(repo CouponRepository) *CouponService {
	return &CouponService{
		repo: repo,
	}
}

func (s *CouponService) CreateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))

	created, err := s.repo.Create(ctx, coupon)
	if err != nil {
		if errors.Is(err, repository.ErrCouponCodeExists) {
			return domain.Coupon{}, ErrCouponCodeExists
		}

		return domain.Coupon{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Redeem validates and applies a coupon for the user and returns the
// coupon so the caller knows the discount. Expiry is checked here; the
// per-user and budget limits are enforced transactionally in the data
// layer.
func (s *CouponService) Redeem(ctx context.Context, code string, userID uint) (domain.Coupon, error) {
	coupon, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return domain.Coupon{}, ErrCouponNotFound
		}

		return domain.Coupon{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	if coupon.Expired(time.Now()) {
		return domain.Coupon{}, ErrCouponExpired
	}

	if err := s.repo.Redeem(ctx, coupon.ID, userID); err != nil {
		if errors.Is(err, repository.ErrCouponAlreadyRedeemed) {
			return domain.Coupon{}, ErrCouponAlreadyRedeemed
		}
		if errors.Is(err, repository.ErrCouponExhausted) {
			return domain.Coupon{}, ErrCouponExhausted
		}

		return domain.Coupon{}, fmt.Errorf("s.repo.Redeem -> %w", err)
	}

	return coupon, nil
}

// PeekDiscount returns the discount a coupon would give without
// consuming a redemption. Used when quoting the registration fee.
func (s *CouponService) PeekDiscount(ctx context.Context, code string) (int, error) {
	coupon, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return 0, ErrCouponNotFound
		}

		return 0, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	if coupon.Expired(time.Now()) {
		return 0, ErrCouponExpired
	}
	if coupon.Exhausted() {
		return 0, ErrCouponExhausted
	}

	return coupon.DiscountPercent, nil
}
