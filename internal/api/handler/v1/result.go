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

type ResultService interface {
	AssignBulk(ctx context.Context, eventID uint, roundNo int, items []domain.ResultAssignment) (domain.BulkOperationResult, error)
}

type ResultHandler struct {
	svc ResultService
}

func NewResultHandler(svc ResultService) *ResultHandler {
	return &ResultHandler{
		svc: svc,
	}
}

// HandleAssignResults godoc
// @Summary      Assign round outcomes in bulk
// @Description  Each item succeeds or fails independently. The response itemizes every failure; a bad item never rolls back the rest of the batch.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                           true  "event ID"
// @Param        roundNo  path      int                           true  "round number"
// @Param        request  body      request.AssignResultsRequest  true  "request body"
// @Success      200      {object}  domain.BulkOperationResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/rounds/{roundNo}/results [post]
// @Security     BearerAuth
func (h *ResultHandler) HandleAssignResults(ctx *gin.Context) {
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

	var req request.AssignResultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.AssignBulk(ctx.Request.Context(), eventID, roundNo, req.Results)
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("round", "number", roundNo))
			return
		}

		err = fmt.Errorf("v1.HandleAssignResults -> h.svc.AssignBulk -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
