package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePaymentIntentRequest struct {
	CouponCode string `json:"coupon_code,omitempty"`
}

func (req *CreatePaymentIntentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CouponCode, validation.Length(0, 30)),
	)
}
