package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/pkg/jwthelper"
)

const SessionCookie = "volley_session"

var (
	errNoSession = errors.New("no session")
	errNotAdmin  = errors.New("administrator role required")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// Session resolves the session cookie, when present and valid, into a
// domain.Principal on the request context. It never rejects a request.
func (a *Authenticator) Session() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			ctx.Next()
			return
		}

		principal, err := jwthelper.ParseToken(a.signingKey, cookie)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Request = ctx.Request.WithContext(domain.ContextWithPrincipal(ctx.Request.Context(), principal))
		ctx.Next()
	}
}

// RequireUser rejects requests without a valid session.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := domain.PrincipalFromContext(ctx.Request.Context()); !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoSession))
			return
		}

		ctx.Next()
	}
}

// RequireAdmin rejects requests whose principal is not an administrator.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, ok := domain.PrincipalFromContext(ctx.Request.Context())
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoSession))
			return
		}
		if !principal.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotAdmin))
			return
		}

		ctx.Next()
	}
}
