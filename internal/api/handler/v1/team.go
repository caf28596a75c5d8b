package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/request"
	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
)

const logoField = "logo"

type TeamService interface {
	CreateTeam(ctx context.Context, team domain.Team, logo *domain.Upload) (domain.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (domain.Team, error)
	ListTeams(ctx context.Context, tournamentID uuid.UUID) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, name string, gender domain.Gender, logo *domain.Upload) (domain.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) (cascade.Result, error)
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleListTeams godoc
// @Summary      List the teams of a tournament
// @Tags         admin
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Success      200      {array}    domain.Team
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID}/teams [get]
// @Security     SessionCookie
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	tournamentID, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	teams, err := h.svc.ListTeams(ctx.Request.Context(), tournamentID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTeams -> h.svc.ListTeams", err)
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleGetTeam godoc
// @Summary      Get a team with its access token
// @Tags         admin
// @Produce      json
// @Param        teamID    path      string  true  "team ID"
// @Success      200      {object}   domain.Team
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID} [get]
// @Security     SessionCookie
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	id, ok := pathID(ctx, "teamID", "team")
	if !ok {
		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetTeam -> h.svc.GetTeam", err)
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Description  Mints the 8 character access token handed to the team manager.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        name          formData  string  true   "team name"
// @Param        gender        formData  string  true   "putra or putri"
// @Param        tournamentId  formData  string  true   "tournament ID"
// @Param        logo          formData  file    false  "JPEG or PNG logo"
// @Success      201      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /admin/teams [post]
// @Security     SessionCookie
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	var req request.CreateTeamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	logo, err := openImage(ctx, logoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer logo.Close()

	team, err := h.svc.CreateTeam(ctx.Request.Context(), req.ToDomain(), logo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateTeam -> h.svc.CreateTeam", err)
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleUpdateTeam godoc
// @Summary      Update a team
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        teamID    path      string  true   "team ID"
// @Param        name      formData  string  true   "team name"
// @Param        gender    formData  string  true   "putra or putri"
// @Param        logo      formData  file    false  "JPEG or PNG logo replacing the current one"
// @Success      200      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /admin/teams/{teamID} [put]
// @Security     SessionCookie
func (h *TeamHandler) HandleUpdateTeam(ctx *gin.Context) {
	id, ok := pathID(ctx, "teamID", "team")
	if !ok {
		return
	}

	var req request.UpdateTeamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	logo, err := openImage(ctx, logoField)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer logo.Close()

	team, err := h.svc.UpdateTeam(ctx.Request.Context(), id, req.Name, domain.Gender(req.Gender), logo.upload())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateTeam -> h.svc.UpdateTeam", err)
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team
// @Description  Deletes the team with its players, documents, officials, jersey and registrations in one transaction.
// @Tags         admin
// @Produce      json
// @Param        teamID    path      string  true  "team ID"
// @Success      200      {object}   response.DeleteResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID} [delete]
// @Security     SessionCookie
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
	id, ok := pathID(ctx, "teamID", "team")
	if !ok {
		return
	}

	result, err := h.svc.DeleteTeam(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteTeam -> h.svc.DeleteTeam", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDeleteResponse(result))
}
