package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/volleyhub/registration-api/internal/domain"
)

var genders = []interface{}{string(domain.GenderPutra), string(domain.GenderPutri)}

// CreateTeamRequest is bound from a multipart form; the logo travels as a
// separate file part.
type CreateTeamRequest struct {
	Name         string `form:"name" json:"name"`
	Gender       string `form:"gender" json:"gender"`
	TournamentID string `form:"tournamentId" json:"tournamentId"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Gender, validation.Required, validation.In(genders...)),
		validation.Field(&req.TournamentID, validation.Required, is.UUID),
	)
}

func (req *CreateTeamRequest) ToDomain() domain.Team {
	return domain.Team{
		Name:         req.Name,
		Gender:       domain.Gender(req.Gender),
		TournamentID: mustUUID(req.TournamentID),
	}
}

type UpdateTeamRequest struct {
	Name   string `form:"name" json:"name"`
	Gender string `form:"gender" json:"gender"`
}

func (req *UpdateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Gender, validation.Required, validation.In(genders...)),
	)
}
