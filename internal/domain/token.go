package domain

import "time"

// RefreshToken is the server-side record of an issued refresh token.
// Only a hash of the opaque token is stored.
type RefreshToken struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
