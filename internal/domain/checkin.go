package domain

import "time"

// CheckInRecord marks one user as present for one round. At most one
// record exists per (round, user) pair.
type CheckInRecord struct {
	ID          uint      `json:"id"`
	RoundID     uint      `json:"round_id"`
	UserID      uint      `json:"user_id"`
	TeamID      *uint     `json:"team_id,omitempty"`
	CheckedInBy uint      `json:"checkedin_by"`
	CheckedInAt time.Time `json:"checkedin_at"`
}

// CheckInSummary is what a check-in call reports back so the operator's
// view can be reconciled without a re-fetch.
type CheckInSummary struct {
	Message          string   `json:"message"`
	CheckedIn        []string `json:"checked_in"`
	AlreadyCheckedIn []string `json:"already_checked_in,omitempty"`
	TeamCode         *string  `json:"team_code,omitempty"`
}
