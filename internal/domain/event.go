package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	TeamEvent   bool      `json:"team_event"`
	Rounds      []Round   `json:"rounds"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Round is a stage within an event that participants check into and can
// be assigned a qualification outcome for.
type Round struct {
	ID      uint   `json:"id"`
	EventID uint   `json:"event_id"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
}

// Registration ties either a single user (solo) or a team to an event.
type Registration struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    *uint     `json:"user_id,omitempty"`
	TeamID    *uint     `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
