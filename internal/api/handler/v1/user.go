package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/request"
	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleCreateUser godoc
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateUserRequest true "request body"
// @Success      201      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users [post]
// @Security     SessionCookie
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateUser -> h.svc.CreateUser", err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleGetUser godoc
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Param        userID    path      string  true  "user ID"
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users/{userID} [get]
// @Security     SessionCookie
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "userID", "user")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.svc.GetUser", err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// pathID parses a uuid path parameter. A malformed id cannot name an existing
// row, so it is reported as not found.
func pathID(ctx *gin.Context, param, resource string) (uuid.UUID, bool) {
	value := ctx.Param(param)

	id, err := uuid.Parse(value)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound(resource, "id", value))
		return uuid.Nil, false
	}

	return id, true
}
