package domain

import "time"

type Payment struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Reference      string    `json:"reference"`
	StripeIntentID string    `json:"-"`
	AmountPaise    int64     `json:"amount_paise"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"` // "pending", "succeeded", "failed"
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
