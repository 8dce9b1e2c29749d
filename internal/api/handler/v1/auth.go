package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventdesk/internal/config"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/facade"
	"github.com/vietanh2810/eventdesk/internal/pkg/jwthelper"
)

type AuthHandler struct {
	conf   *config.APIConfig
	facade Facade
}

func NewAuthHandler(conf *config.APIConfig, f Facade) *AuthHandler {
	return &AuthHandler{
		conf:   conf,
		facade: f,
	}
}

func role(ctx *gin.Context) (domain.Role, bool) {
	r := domain.Role(ctx.Param("role"))
	if !r.Valid() {
		response.ErrBadRequest(ctx, fmt.Errorf("invalid role %q", ctx.Param("role")))
		return "", false
	}
	return r, true
}

// HandleSignup godoc
// @Summary      Sign up an organiser or a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role      path      string                 true "organiser or customer"
// @Param        request   body      request.SignupRequest  true "request body"
// @Success      201      {object}   facade.Result{payload=facade.SignupPayload}
// @Failure      400      {object}   facade.Result
// @Failure      409      {object}   facade.Result
// @Failure      504      {object}   facade.Result
// @Router       /auth/{role}/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	r, ok := role(ctx)
	if !ok {
		return
	}

	var req request.SignupRequest
	if !bind(ctx, &req) {
		return
	}

	var res facade.Result
	switch r {
	case domain.RoleOrganiser:
		res = h.facade.OrganiserSignup(ctx.Request.Context(), req.Profile())
	case domain.RoleCustomer:
		res = h.facade.CustomerSignup(ctx.Request.Context(), req.Profile())
	}

	response.Render(ctx, res, http.StatusCreated)
}

// HandleLogin godoc
// @Summary      Log in through the console credential check
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role      path      string                 true "organiser or customer"
// @Param        request   body      request.LoginRequest   true "request body"
// @Success      200      {object}   facade.Result{payload=response.LoginResponse}
// @Failure      400      {object}   facade.Result
// @Failure      401      {object}   facade.Result
// @Router       /auth/{role}/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	r, ok := role(ctx)
	if !ok {
		return
	}

	var req request.LoginRequest
	if !bind(ctx, &req) {
		return
	}

	var res facade.Result
	switch r {
	case domain.RoleOrganiser:
		res = h.facade.OrganiserLogin(ctx.Request.Context(), req.Username, req.Password)
	case domain.RoleCustomer:
		res = h.facade.CustomerLogin(ctx.Request.Context(), req.Username, req.Password)
	}
	if !res.OK {
		response.Render(ctx, res)
		return
	}

	login, ok := res.Payload.(facade.LoginPayload)
	if !ok {
		response.RenderErr(ctx, facade.CodeInternal, fmt.Errorf("unexpected login payload %T", res.Payload))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), login.Session, ctx.Request.UserAgent(), h.conf.TokenTTL)
	if err != nil {
		response.RenderErr(ctx, facade.CodeInternal, fmt.Errorf("jwthelper.GenerateToken -> %w", err))
		return
	}

	res.Payload = response.LoginResponse{
		Token:   token,
		User:    login.User,
		Session: login.Session,
	}
	response.Render(ctx, res)
}
