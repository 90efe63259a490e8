package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCouponRequest struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	MaxRedemptions  int       `json:"max_redemptions"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (req *CreateCouponRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(3, 30)),
		validation.Field(&req.DiscountPercent, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&req.MaxRedemptions, validation.Required, validation.Min(1)),
		validation.Field(&req.ExpiresAt, validation.Required),
	)
}
