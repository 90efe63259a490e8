package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/request"
	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/response"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	PeekDiscount(ctx context.Context, code string) (int, error)
}

type CouponHandler struct {
	svc CouponService
}

func NewCouponHandler(svc CouponService) *CouponHandler {
	return &CouponHandler{
		svc: svc,
	}
}

// HandleCreateCoupon godoc
// @Summary      Create a discount coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCouponRequest  true  "request body"
// @Success      201      {object}  domain.Coupon
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /coupons [post]
// @Security     BearerAuth
func (h *CouponHandler) HandleCreateCoupon(ctx *gin.Context) {
	var req request.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	coupon, err := h.svc.CreateCoupon(ctx.Request.Context(), domain.Coupon{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MaxRedemptions:  req.MaxRedemptions,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrCouponCodeExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrCouponCodeExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCoupon -> h.svc.CreateCoupon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, coupon)
}

// HandlePeekCoupon godoc
// @Summary      Check a coupon's discount without redeeming it
// @Tags         coupons
// @Produce      json
// @Param        code  path      string  true  "coupon code"
// @Success      200   {object}  map[string]int
// @Failure      404   {object}  response.Err
// @Failure      410   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /coupons/{code} [get]
// @Security     BearerAuth
func (h *CouponHandler) HandlePeekCoupon(ctx *gin.Context) {
	code := ctx.Param("code")

	discount, err := h.svc.PeekDiscount(ctx.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			response.RenderErr(ctx, response.ErrNotFound("coupon", "code", code))
		case errors.Is(err, service.ErrCouponExpired), errors.Is(err, service.ErrCouponExhausted):
			response.RenderErr(ctx, response.NewErr(http.StatusGone, http.StatusGone, err.Error()))
		default:
			err = fmt.Errorf("v1.HandlePeekCoupon -> h.svc.PeekDiscount -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"discount_percent": discount})
}
