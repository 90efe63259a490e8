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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	RegisterSolo(ctx context.Context, eventID, userID uint) (domain.Registration, error)
	RegisterTeam(ctx context.Context, eventID, teamID, byUserID uint) (domain.Registration, error)
}

type EventHandler struct {
	svc     EventService
	teamSvc TeamService
	uSvc    UserService
}

func NewEventHandler(svc EventService, teamSvc TeamService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:     svc,
		teamSvc: teamSvc,
		uSvc:    uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event with its rounds
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := domain.Event{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		TeamEvent:   req.TeamEvent,
	}
	for _, r := range req.Rounds {
		event.Rounds = append(event.Rounds, domain.Round{
			Number: r.Number,
			Name:   r.Name,
		})
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  With no body (or no team_id) the caller is registered solo. With a team_id the caller's team is registered; only the team leader may do this.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true   "event ID"
// @Param        request  body      request.RegisterRequest  false  "request body"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterRequest
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

	var registration domain.Registration
	if req.TeamID != nil {
		team, err := h.teamSvc.GetTeamByCode(ctx.Request.Context(), *req.TeamID)
		if err != nil {
			if errors.Is(err, service.ErrTeamNotFound) {
				response.RenderErr(ctx, response.ErrNotFound("team", "code", *req.TeamID))
				return
			}

			err = fmt.Errorf("v1.HandleRegister -> h.teamSvc.GetTeamByCode -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		registration, err = h.svc.RegisterTeam(ctx.Request.Context(), eventID, team.ID, user.ID)
	} else {
		registration, err = h.svc.RegisterSolo(ctx.Request.Context(), eventID, user.ID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotTeamLeader))
		case errors.Is(err, service.ErrSoloOnlyEvent), errors.Is(err, service.ErrTeamOnlyEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}
