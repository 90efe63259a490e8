package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/response"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/scan"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

type LookupService interface {
	Lookup(ctx context.Context, eventID uint, roundNo int, code string) (domain.LookupResult, error)
}

type LookupHandler struct {
	svc LookupService
}

func NewLookupHandler(svc LookupService) *LookupHandler {
	return &LookupHandler{
		svc: svc,
	}
}

// HandleLookup godoc
// @Summary      Resolve a scanned or typed code against a round
// @Description  Accepts a bare melinia code or a scanned QR payload (JSON with user_id). Returns the participant or the full team roster with eligibility and check-in state per member.
// @Tags         checkin
// @Produce      json
// @Param        eventID  path      int     true  "event ID"
// @Param        roundNo  path      int     true  "round number"
// @Param        code     query     string  true  "raw scanner payload or code"
// @Success      200      {object}  domain.LookupResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/rounds/{roundNo}/lookup [get]
// @Security     BearerAuth
func (h *LookupHandler) HandleLookup(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	roundNo, err := parseIntParam(ctx, "roundNo")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	raw := ctx.Query("code")
	if raw == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("query parameter code is required")))
		return
	}

	payload, err := scan.Resolve(raw)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Lookup(ctx.Request.Context(), eventID, roundNo, payload.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoundNotFound):
			response.RenderErr(ctx, response.ErrNotFound("round", "number", roundNo))
		case errors.Is(err, service.ErrCodeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participant or team", "code", payload.Code))
		case errors.Is(err, service.ErrNotRegistered):
			// Valid code, wrong event. The operator should send them to
			// the registration desk, not re-scan.
			response.RenderErr(ctx, response.ErrConflict(service.ErrNotRegistered))
		default:
			err = fmt.Errorf("v1.HandleLookup -> h.svc.Lookup -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}
