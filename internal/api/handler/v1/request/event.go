package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
)

type CreateRoundRequest struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type CreateEventRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Venue       string               `json:"venue"`
	StartsAt    time.Time            `json:"starts_at"`
	TeamEvent   bool                 `json:"team_event"`
	Rounds      []CreateRoundRequest `json:"rounds"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Venue, validation.Length(0, 100)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.Rounds, validation.Required, validation.Length(1, 20)),
	)
}

// RegisterRequest registers the caller (solo) or their team for an event.
type RegisterRequest struct {
	TeamID *string `json:"team_id,omitempty"`
}

func (req *RegisterRequest) Validate() error {
	if req.TeamID != nil && !identifier.Valid(*req.TeamID) {
		return errInvalidCode
	}
	return nil
}
