package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/volleyhub/registration-api/internal/api/handler/v1/response"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/service"
)

var notFoundErrs = []error{
	service.ErrTournamentNotFound,
	service.ErrTeamNotFound,
	service.ErrPlayerNotFound,
	service.ErrOfficialNotFound,
	service.ErrJerseyNotFound,
	service.ErrRegistrationNotFound,
	service.ErrUserNotFound,
}

var badRequestErrs = []error{
	domain.ErrDeadlineNotBeforeStart,
	domain.ErrEndNotAfterStart,
	service.ErrGenderNotAllowed,
	service.ErrTeamNotInTournament,
	service.ErrUnsupportedFileType,
	service.ErrFileTooLarge,
	service.ErrDocumentLabelRequired,
	service.ErrWeakPassword,
}

// renderServiceErr maps an error coming out of a service onto the HTTP error
// taxonomy. op names the failing call for the server-side log.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrResourceNotFound(target))
			return
		}
	}

	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			response.RenderErr(ctx, response.ErrBadRequest(target))
			return
		}
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		response.RenderErr(ctx, response.ErrConflict(conflict, conflict.Field))
		return
	}

	err = fmt.Errorf("%s -> %w", op, err)
	switch {
	case errors.Is(err, service.ErrRosterFull):
		response.RenderErr(ctx, response.ErrConflict(service.ErrRosterFull, ""))
	case errors.Is(err, service.ErrCategoryExcludesTeams):
		response.RenderErr(ctx, response.ErrConflict(service.ErrCategoryExcludesTeams, ""))
	case errors.Is(err, service.ErrRosterAboveLimit):
		response.RenderErr(ctx, response.ErrConflict(service.ErrRosterAboveLimit, ""))
	case errors.Is(err, service.ErrUpload):
		response.RenderErr(ctx, response.ErrBadGateway(err))
	case errors.Is(err, service.ErrCascadeFailed):
		response.RenderErr(ctx, response.ErrInternalServerError(err, service.ErrCascadeFailed.Error()))
	case errors.Is(err, service.ErrTokenSpaceExhausted):
		response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrTokenSpaceExhausted))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
