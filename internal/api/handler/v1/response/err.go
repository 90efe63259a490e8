package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope every endpoint renders on failure.
type Err struct {
	StatusCode int    `json:"-"` // not rendered in the body, only on the wire
	Code       int    `json:"code"`
	Msg        string `json:"msg"`
}

func (e *Err) Error() string {
	return e.Msg
}

// RenderErr logs the error with the request context and writes the envelope.
func RenderErr(ctx *gin.Context, err *Err) {
	zap.L().Error("request failed",
		zap.Int("status", err.StatusCode),
		zap.String("path", ctx.FullPath()),
		zap.String("msg", err.Msg),
	)

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func NewErr(statusCode, code int, msg string) *Err {
	return &Err{
		StatusCode: statusCode,
		Code:       code,
		Msg:        msg,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, http.StatusBadRequest, err.Error())
}

func ErrUnauthorized(msg string) *Err {
	return NewErr(http.StatusUnauthorized, http.StatusUnauthorized, msg)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, http.StatusUnauthorized, err.Error())
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, http.StatusForbidden, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	return NewErr(http.StatusNotFound, http.StatusNotFound, fmt.Sprintf("%v not found (%v = %v)", resource, key, value))
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, http.StatusConflict, err.Error())
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return NewErr(http.StatusInternalServerError, http.StatusInternalServerError, "internal server error")
}
