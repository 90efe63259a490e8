package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"

	"github.com/Melinia-CIT/melinia-api/internal/config"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

var ErrAlreadyPaid = errors.New("registration fee is already settled")

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByIntentID(ctx context.Context, intentID string) (domain.Payment, error)
	MarkStatusByIntentID(ctx context.Context, intentID, status string) error
}

type PaymentUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdatePaymentStatus(ctx context.Context, id uint, paymentStatus domain.PaymentStatus) error
}

// IntentCreator creates a payment intent with the provider and returns
// its id and client secret. The default implementation talks to Stripe;
// tests substitute their own.
type IntentCreator func(amountPaise int64, currency, reference string) (id, clientSecret string, err error)

type PaymentService struct {
	conf         *config.StripeConfig
	payments     PaymentRepository
	users        PaymentUserRepository
	coupons      *CouponService
	createIntent IntentCreator
}

func NewPaymentService(conf *config.StripeConfig, payments PaymentRepository, users PaymentUserRepository, coupons *CouponService) *PaymentService {
	stripe.Key = conf.SecretKey

	return &PaymentService{
		conf:     conf,
		payments: payments,
		users:    users,
		coupons:  coupons,
		createIntent: func(amountPaise int64, currency, reference string) (string, string, error) {
			pi, err := paymentintent.New(&stripe.PaymentIntentParams{
				Amount:   stripe.Int64(amountPaise),
				Currency: stripe.String(currency),
				Params: stripe.Params{
					Metadata: map[string]string{"reference": reference},
				},
			})
			if err != nil {
				return "", "", err
			}

			return pi.ID, pi.ClientSecret, nil
		},
	}
}

// CreateRegistrationPayment opens a payment intent for the registration
// fee, applying a coupon when one is presented. The coupon redemption is
// consumed up front; Stripe retries are the user's to make with the same
// client secret.
func (s *PaymentService) CreateRegistrationPayment(ctx context.Context, userID uint, couponCode string) (domain.Payment, string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Payment{}, "", fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if user.PaymentStatus != domain.PaymentUnpaid {
		return domain.Payment{}, "", ErrAlreadyPaid
	}

	amount := s.conf.RegistrationFeePaise
	if couponCode != "" {
		coupon, err := s.coupons.Redeem(ctx, couponCode, userID)
		if err != nil {
			return domain.Payment{}, "", err
		}
		amount = amount * int64(100-coupon.DiscountPercent) / 100
	}

	reference := uuid.NewString()
	intentID, clientSecret, err := s.createIntent(amount, s.conf.Currency, reference)
	if err != nil {
		return domain.Payment{}, "", fmt.Errorf("s.createIntent -> %w", err)
	}

	payment, err := s.payments.Create(ctx, domain.Payment{
		UserID:         userID,
		Reference:      reference,
		StripeIntentID: intentID,
		AmountPaise:    amount,
		Currency:       s.conf.Currency,
		Status:         "pending",
	})
	if err != nil {
		return domain.Payment{}, "", fmt.Errorf("s.payments.Create -> %w", err)
	}

	return payment, clientSecret, nil
}

// ConfirmIntentSucceeded settles the payment named by the webhook and
// flips the payer to PAID.
func (s *PaymentService) ConfirmIntentSucceeded(ctx context.Context, intentID string) error {
	payment, err := s.payments.FindByIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("s.payments.FindByIntentID -> %w", err)
	}

	if err := s.payments.MarkStatusByIntentID(ctx, intentID, "succeeded"); err != nil {
		return fmt.Errorf("s.payments.MarkStatusByIntentID -> %w", err)
	}

	if err := s.users.UpdatePaymentStatus(ctx, payment.UserID, domain.PaymentPaid); err != nil {
		return fmt.Errorf("s.users.UpdatePaymentStatus -> %w", err)
	}

	return nil
}

// ConfirmIntentFailed records a failed attempt; the payer stays UNPAID.
func (s *PaymentService) ConfirmIntentFailed(ctx context.Context, intentID string) error {
	if err := s.payments.MarkStatusByIntentID(ctx, intentID, "failed"); err != nil {
		return fmt.Errorf("s.payments.MarkStatusByIntentID -> %w", err)
	}

	return nil
}

// WebhookSecret exposes the endpoint secret for signature verification
// in the handler.
func (s *PaymentService) WebhookSecret() string {
	return s.conf.WebhookSecret
}
