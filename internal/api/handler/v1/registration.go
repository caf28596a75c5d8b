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

type RegistrationService interface {
	ListRegistrations(ctx context.Context, tournamentID uuid.UUID) ([]domain.Registration, error)
	Register(ctx context.Context, tournamentID, teamID uuid.UUID) (domain.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, payment domain.PaymentStatus) (domain.Registration, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleListRegistrations godoc
// @Summary      List the registrations of a tournament
// @Tags         admin
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Success      200      {array}    domain.Registration
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID}/registrations [get]
// @Security     SessionCookie
func (h *RegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	tournamentID, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	registrations, err := h.svc.ListRegistrations(ctx.Request.Context(), tournamentID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListRegistrations -> h.svc.ListRegistrations", err)
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleCreateRegistration godoc
// @Summary      Register a team for its tournament
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        tournamentID  path      string  true  "tournament ID"
// @Param        request   body      request.CreateRegistrationRequest true "request body"
// @Success      201      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tournaments/{tournamentID}/registrations [post]
// @Security     SessionCookie
func (h *RegistrationHandler) HandleCreateRegistration(ctx *gin.Context) {
	tournamentID, ok := pathID(ctx, "tournamentID", "tournament")
	if !ok {
		return
	}

	var req request.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), tournamentID, uuid.MustParse(req.TeamID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateRegistration -> h.svc.Register", err)
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleUpdateRegistration godoc
// @Summary      Update registration and payment status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        registrationID  path      string  true  "registration ID"
// @Param        request   body      request.UpdateRegistrationRequest true "request body"
// @Success      200      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/registrations/{registrationID} [patch]
// @Security     SessionCookie
func (h *RegistrationHandler) HandleUpdateRegistration(ctx *gin.Context) {
	id, ok := pathID(ctx, "registrationID", "registration")
	if !ok {
		return
	}

	var req request.UpdateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.UpdateStatus(ctx.Request.Context(), id,
		domain.RegistrationStatus(req.Status), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateRegistration -> h.svc.UpdateStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, registration)
}
