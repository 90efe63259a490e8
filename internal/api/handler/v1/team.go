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

type TeamService interface {
	CreateTeam(ctx context.Context, name string, leaderID uint) (domain.Team, error)
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	GetTeamByCode(ctx context.Context, code string) (domain.Team, error)
	JoinTeam(ctx context.Context, code string, userID uint) (domain.Team, error)
	LeaveTeam(ctx context.Context, teamID, userID uint) error
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleCreateTeam godoc
// @Summary      Create a team with the caller as leader
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTeamRequest  true  "request body"
// @Success      201      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	leaderID := ctx.GetUint(middleware.CtxKeyUserID)

	team, err := h.svc.CreateTeam(ctx.Request.Context(), req.Name, leaderID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleGetTeam godoc
// @Summary      Get a team by ID
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200     {object}  domain.Team
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID} [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleJoinTeam godoc
// @Summary      Join a team by its code
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.JoinTeamRequest  true  "request body"
// @Success      200      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams/join [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleJoinTeam(ctx *gin.Context) {
	var req request.JoinTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	team, err := h.svc.JoinTeam(ctx.Request.Context(), req.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "code", req.Code))
		case errors.Is(err, service.ErrAlreadyTeamMember):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyTeamMember))
		default:
			err = fmt.Errorf("v1.HandleJoinTeam -> h.svc.JoinTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleLeaveTeam godoc
// @Summary      Leave a team
// @Tags         teams
// @Produce      json
// @Param        teamID  path  int  true  "team ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /teams/{teamID}/leave [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleLeaveTeam(ctx *gin.Context) {
	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := ctx.GetUint(middleware.CtxKeyUserID)

	if err := h.svc.LeaveTeam(ctx.Request.Context(), teamID, userID); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleLeaveTeam -> h.svc.LeaveTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
