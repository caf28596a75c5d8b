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

type TournamentService interface {
	CreateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	GetTournament(ctx context.Context, id uuid.UUID) (domain.Tournament, error)
	ListTournaments(ctx context.Context, filter domain.TournamentFilter) ([]domain.Tournament, error)
	GetOpenTournament(ctx context.Context, id uuid.UUID) (domain.Tournament, error)
	UpdateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	DeleteTournament(ctx context.Context, id uuid.UUID) (cascade.Result, error)
}

type TournamentHandler struct {
	svc TournamentService
}

func NewTournamentHandler(svc TournamentService) *TournamentHandler {
	return &TournamentHandler{
		svc: svc,
	}
}

// HandleListTournaments godoc
// @Summary      List tournaments
// @Tags         admin
// @Produce      json
// @Param        status    query     string  false  "open or closed"
// @Param        category  query     string  false  "putra, putri or mixed"
// @Success      200      {array}    domain.Tournament
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments [get]
// @Security     SessionCookie
func (h *TournamentHandler) HandleListTournaments(ctx *gin.Context) {
	var req request.TournamentFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tournaments, err := h.svc.ListTournaments(ctx.Request.Context(), domain.TournamentFilter{
		Status:   domain.TournamentStatus(req.Status),
		Category: domain.Category(req.Category),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTournaments -> h.svc.ListTournaments", err)
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleGetTournament godoc
// @Summary      Get a tournament
// @Tags         admin
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Success      200      {object}   domain.Tournament
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID} [get]
// @Security     SessionCookie
func (h *TournamentHandler) HandleGetTournament(ctx *gin.Context) {
	id, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	tournament, err := h.svc.GetTournament(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetTournament -> h.svc.GetTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, tournament)
}

// HandleCreateTournament godoc
// @Summary      Create a tournament
// @Description  The registration deadline must fall before the start date, which must fall before the end date.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.TournamentRequest true "request body"
// @Success      201      {object}   domain.Tournament
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments [post]
// @Security     SessionCookie
func (h *TournamentHandler) HandleCreateTournament(ctx *gin.Context) {
	var req request.TournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tournament, err := h.svc.CreateTournament(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateTournament -> h.svc.CreateTournament", err)
		return
	}

	ctx.JSON(http.StatusCreated, tournament)
}

// HandleUpdateTournament godoc
// @Summary      Update a tournament
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Param        request   body      request.TournamentRequest true "request body"
// @Success      200      {object}   domain.Tournament
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID} [put]
// @Security     SessionCookie
func (h *TournamentHandler) HandleUpdateTournament(ctx *gin.Context) {
	id, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	var req request.TournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tournament := req.ToDomain()
	tournament.ID = id

	updated, err := h.svc.UpdateTournament(ctx.Request.Context(), tournament)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateTournament -> h.svc.UpdateTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteTournament godoc
// @Summary      Delete a tournament
// @Description  Deletes the tournament with its teams, rosters, jerseys, documents and registrations in one transaction.
// @Tags         admin
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Success      200      {object}   response.DeleteResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID} [delete]
// @Security     SessionCookie
func (h *TournamentHandler) HandleDeleteTournament(ctx *gin.Context) {
	id, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	result, err := h.svc.DeleteTournament(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteTournament -> h.svc.DeleteTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDeleteResponse(result))
}

// HandleListOpenTournaments godoc
// @Summary      List tournaments open for registration
// @Tags         public
// @Produce      json
// @Param        category  query     string  false  "putra, putri or mixed"
// @Success      200      {array}    domain.Tournament
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/tournaments [get]
func (h *TournamentHandler) HandleListOpenTournaments(ctx *gin.Context) {
	var req request.TournamentFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tournaments, err := h.svc.ListTournaments(ctx.Request.Context(), domain.TournamentFilter{
		Status:   domain.TournamentOpen,
		Category: domain.Category(req.Category),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOpenTournaments -> h.svc.ListTournaments", err)
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleGetOpenTournament godoc
// @Summary      Get an open tournament
// @Tags         public
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Success      200      {object}   domain.Tournament
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /public/tournaments/{tournamentID} [get]
func (h *TournamentHandler) HandleGetOpenTournament(ctx *gin.Context) {
	id, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	tournament, err := h.svc.GetOpenTournament(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetOpenTournament -> h.svc.GetOpenTournament", err)
		return
	}

	ctx.JSON(http.StatusOK, tournament)
}
