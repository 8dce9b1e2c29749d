package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/pkg/jwthelper"
)

const sessionKey = "session"

var (
	errMissingToken     = errors.New("missing bearer token")
	errSessionNotLoaded = errors.New("no session in request context")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT loads the session from the Authorization header. Websocket
// clients, which cannot set headers, pass the token as ?token= instead.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = ctx.Query("token")
		}
		if token == "" {
			response.ErrUnauthorized(ctx, errMissingToken)
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.ErrUnauthorized(ctx, err)
			return
		}
		session, err := claims.Session()
		if err != nil {
			response.ErrUnauthorized(ctx, err)
			return
		}

		ctx.Set(sessionKey, session)
		ctx.Next()
	}
}

func Session(ctx *gin.Context) (domain.Session, error) {
	v, ok := ctx.Get(sessionKey)
	if !ok {
		return domain.Session{}, errSessionNotLoaded
	}
	session, ok := v.(domain.Session)
	if !ok {
		return domain.Session{}, errSessionNotLoaded
	}
	return session, nil
}
