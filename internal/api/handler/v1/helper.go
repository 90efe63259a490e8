package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Melinia-CIT/melinia-api/internal/api/handler/v1/response"
	"github.com/Melinia-CIT/melinia-api/internal/api/middleware"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/service"
)

// getUserFromContext loads the full user record for the ID VerifyJWT put
// in the context. Handlers that only need the ID should use the context
// key directly.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.CtxKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("not authenticated")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("account no longer exists")
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%v is not a valid %v", ctx.Param(name), name)
	}

	return uint(v), nil
}

func parseIntParam(ctx *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%v is not a valid %v", ctx.Param(name), name)
	}

	return v, nil
}
