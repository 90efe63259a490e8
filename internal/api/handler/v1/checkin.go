package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/request"
	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/response"
	"github.com/Melinia-CIT/melinia-api/internal/api/middleware"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

type CheckInService interface {
	CheckIn(ctx context.Context, eventID uint, roundNo int, operatorID uint, userCodes []string, teamCode *string) (domain.CheckInSummary, error)
}

type CheckInHandler struct {
	svc CheckInService
}

func NewCheckInHandler(svc CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

// HandleCheckIn godoc
// @Summary      Check a set of participants into a round
// @Description  Every code is validated before anything is written. Members already checked in are reported in the summary, not as an error.
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                     true  "event ID"
// @Param        roundNo  path      int                     true  "round number"
// @Param        request  body      request.CheckInRequest  true  "request body"
// @Success      200      {object}  domain.CheckInSummary
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/rounds/{roundNo}/checkin [post]
// @Security     BearerAuth
func (h *CheckInHandler) HandleCheckIn(ctx *gin.Context) {
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

	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	operatorID := ctx.GetUint(middleware.CtxKeyUserID)

	summary, err := h.svc.CheckIn(ctx.Request.Context(), eventID, roundNo, operatorID, req.UserIDs, req.TeamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoundNotFound):
			response.RenderErr(ctx, response.ErrNotFound("round", "number", roundNo))
		case errors.Is(err, service.ErrTeamNotFound):
			teamCode := ""
			if req.TeamID != nil {
				teamCode = *req.TeamID
			}
			response.RenderErr(ctx, response.ErrNotFound("team", "code", teamCode))
		case errors.Is(err, service.ErrNoUsersToCheckIn),
			errors.Is(err, service.ErrUnknownParticipant),
			errors.Is(err, service.ErrIneligibleParticipant),
			errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
