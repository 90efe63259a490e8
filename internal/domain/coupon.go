package domain

import "time"

type Coupon struct {
	ID              uint      `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	MaxRedemptions  int       `json:"max_redemptions"`
	Redeemed        int       `json:"redeemed"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// Expired reports whether the coupon can no longer be redeemed at now.
func (c Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Exhausted reports whether the redemption budget is used up.
func (c Coupon) Exhausted() bool {
	return c.MaxRedemptions > 0 && c.Redeemed >= c.MaxRedemptions
}
