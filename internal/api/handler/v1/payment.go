package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/request"
	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/response"
	"github.com/Melinia-CIT/melinia-api/internal/api/middleware"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

type PaymentService interface {
	CreateRegistrationPayment(ctx context.Context, userID uint, couponCode string) (domain.Payment, string, error)
	ConfirmIntentSucceeded(ctx context.Context, intentID string) error
	ConfirmIntentFailed(ctx context.Context, intentID string) error
	WebhookSecret() string
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleCreatePaymentIntent godoc
// @Summary      Start a registration fee payment
// @Description  Creates a Stripe PaymentIntent for the caller's registration fee, applying a coupon if one is given.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePaymentIntentRequest  false  "request body"
// @Success      201      {object}  response.PaymentIntentResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/intent [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleCreatePaymentIntent(ctx *gin.Context) {
	var req request.CreatePaymentIntentRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	payment, clientSecret, err := h.svc.CreateRegistrationPayment(ctx.Request.Context(), userID, req.CouponCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyPaid):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyPaid))
		case errors.Is(err, service.ErrCouponNotFound),
			errors.Is(err, service.ErrCouponExpired),
			errors.Is(err, service.ErrCouponExhausted),
			errors.Is(err, service.ErrCouponAlreadyRedeemed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreatePaymentIntent -> h.svc.CreateRegistrationPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.PaymentIntentResponse{
		Payment:      payment,
		ClientSecret: clientSecret,
	})
}

// HandleStripeWebhook godoc
// @Summary      Stripe webhook endpoint
// @Description  Verifies the Stripe signature and settles the matching payment record.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook(ctx *gin.Context) {
	const maxBodyBytes = int64(65536)

	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodyBytes))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("reading webhook body -> %w", err)))
		return
	}

	event, err := webhook.ConstructEvent(body, ctx.GetHeader("Stripe-Signature"), h.svc.WebhookSecret())
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("webhook signature verification failed -> %w", err)))
		return
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("decoding payment intent -> %w", err)))
			return
		}

		confirm := h.svc.ConfirmIntentSucceeded
		if event.Type == "payment_intent.payment_failed" {
			confirm = h.svc.ConfirmIntentFailed
		}

		if err := confirm(ctx.Request.Context(), intent.ID); err != nil {
			err = fmt.Errorf("v1.HandleStripeWebhook -> confirming intent %v -> %w", intent.ID, err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
	}

	ctx.JSON(http.StatusOK, gin.H{"received": "true"})
}
