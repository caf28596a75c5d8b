package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/request"
	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/api/middleware"
	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/pkg/jwthelper"
	"github.com/volleyhub/registration-api/internal/service"
)

var errNoPrincipal = errors.New("no principal on request")

type AuthService interface {
	Login(ctx context.Context, login, password string) (domain.User, error)
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   AuthService
	users UserService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, users UserService) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		users: users,
	}
}

// HandleLogin godoc
// @Summary      Login with username or email
// @Description  Sets the volley_session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user, ctx.Request.UserAgent(), h.conf.SessionTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setSession(ctx, token, int(h.conf.SessionTTL.Seconds()))
	ctx.JSON(http.StatusOK, response.LoginResponse{
		User: user,
	})
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Clears the session cookie.
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	h.setSession(ctx, "", -1)
	ctx.Status(http.StatusNoContent)
}

// HandleMe godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/me [get]
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	principal, ok := domain.PrincipalFromContext(ctx.Request.Context())
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoPrincipal))
		return
	}

	user, err := h.users.GetUser(ctx.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		renderServiceErr(ctx, "v1.HandleMe -> h.users.GetUser", err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSession(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.conf.Environment != "development", true)
}
