package response

import "github.com/Melinia-CIT/melinia-api/internal/domain"

// PaymentIntentResponse carries the Stripe client secret the frontend
// needs to confirm the payment, alongside our own payment record.
type PaymentIntentResponse struct {
	Payment      domain.Payment `json:"payment"`
	ClientSecret string         `json:"client_secret"`
}
