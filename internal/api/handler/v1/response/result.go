package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/facade"
)

type LoginResponse struct {
	Token   string         `json:"token"`
	User    domain.User    `json:"user"`
	Session domain.Session `json:"session"`
}

// Status is the HTTP status for a result code.
func Status(code facade.Code) int {
	switch code {
	case facade.CodeOK:
		return http.StatusOK
	case facade.CodeValidation:
		return http.StatusBadRequest
	case facade.CodeConflict:
		return http.StatusConflict
	case facade.CodeNotFound:
		return http.StatusNotFound
	case facade.CodeUnauthorized:
		return http.StatusUnauthorized
	case facade.CodeForbidden:
		return http.StatusForbidden
	case facade.CodeTimeout:
		return http.StatusGatewayTimeout
	case facade.CodeParseMiss:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Render writes a façade result. okStatus replaces 200 for successful results.
func Render(ctx *gin.Context, res facade.Result, okStatus ...int) {
	status := Status(res.Code)
	if res.OK && len(okStatus) > 0 {
		status = okStatus[0]
	}
	ctx.JSON(status, res)
}

// RenderErr rejects a request before it reaches the façade.
func RenderErr(ctx *gin.Context, code facade.Code, err error) {
	zap.L().Debug("request rejected",
		zap.String("path", ctx.FullPath()),
		zap.String("code", string(code)),
		zap.Error(err),
	)
	ctx.AbortWithStatusJSON(Status(code), facade.Result{Code: code, Message: err.Error()})
}

func ErrBadRequest(ctx *gin.Context, err error) {
	RenderErr(ctx, facade.CodeValidation, err)
}

func ErrUnauthorized(ctx *gin.Context, err error) {
	RenderErr(ctx, facade.CodeUnauthorized, err)
}

func ErrForbidden(ctx *gin.Context, err error) {
	RenderErr(ctx, facade.CodeForbidden, err)
}
