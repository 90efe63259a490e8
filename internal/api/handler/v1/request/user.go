package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateUserStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			string(domain.StatusActive),
			string(domain.StatusInactive),
			string(domain.StatusSuspend),
		)),
	)
}
