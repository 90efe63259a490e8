package domain

import "time"

type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
	StatusSuspend  UserStatus = "SUSPEND"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentExempted PaymentStatus = "EXEMPTED"
)

const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
	RoleAdmin       = "admin"
)

type User struct {
	ID            uint          `json:"id"`
	Code          string        `json:"code"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email"`
	Password      string        `json:"-"`
	Role          string        `json:"role"`
	Status        UserStatus    `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// EligibleForCheckIn reports whether the user may be checked into a round:
// the account is active and the registration fee is not pending.
func (u User) EligibleForCheckIn() bool {
	return u.Status == StatusActive && u.PaymentStatus != PaymentUnpaid
}
