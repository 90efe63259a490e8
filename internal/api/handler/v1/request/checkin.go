package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/identifier"
)

var errInvalidCode = errors.New("must be a melinia code (MLNU followed by 6 letters or digits)")

// meliniaCode validates a single code field after normalization, so
// lowercase or padded scanner output still passes.
var meliniaCode = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required is a separate rule
	}
	if !identifier.Valid(s) {
		return errInvalidCode
	}
	return nil
})

type CheckInRequest struct {
	UserIDs []string `json:"user_ids"`
	TeamID  *string  `json:"team_id,omitempty"`
}

func (req *CheckInRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.UserIDs, validation.Required, validation.Length(1, 0), validation.Each(meliniaCode)),
	)
	if err != nil {
		return err
	}

	if req.TeamID != nil && !identifier.Valid(*req.TeamID) {
		return errInvalidCode
	}

	return nil
}

type AssignResultsRequest struct {
	Results []domain.ResultAssignment `json:"results"`
}

// Validate only guards the envelope shape. Per-item problems (unknown
// codes, bad outcomes) are reported item by item in the response, never
// as a request-level rejection.
func (req *AssignResultsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Results, validation.Required, validation.Length(1, 500)),
	)
}
