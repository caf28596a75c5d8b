package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/volleyhub/registration-api/internal/domain"
)

type TournamentRequest struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	Status               string    `json:"status"`
	Location             string    `json:"location"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	MaxPlayersPerTeam    int       `json:"maxPlayersPerTeam"`
	PoolsPutra           int       `json:"poolsPutra"`
	PoolsPutri           int       `json:"poolsPutri"`
	EntryFee             int       `json:"entryFee"`
}

func (req *TournamentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 150)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Category, validation.Required,
			validation.In(string(domain.CategoryPutra), string(domain.CategoryPutri), string(domain.CategoryMixed))),
		validation.Field(&req.Status, validation.In(string(domain.TournamentOpen), string(domain.TournamentClosed))),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.RegistrationDeadline, validation.Required),
		validation.Field(&req.MaxPlayersPerTeam, validation.Required, validation.Min(1)),
		validation.Field(&req.PoolsPutra, validation.Min(0)),
		validation.Field(&req.PoolsPutri, validation.Min(0)),
		validation.Field(&req.EntryFee, validation.Min(0)),
	)
}

func (req *TournamentRequest) ToDomain() domain.Tournament {
	return domain.Tournament{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             domain.Category(req.Category),
		Status:               domain.TournamentStatus(req.Status),
		Location:             req.Location,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxPlayersPerTeam:    req.MaxPlayersPerTeam,
		PoolsPutra:           req.PoolsPutra,
		PoolsPutri:           req.PoolsPutri,
		EntryFee:             req.EntryFee,
	}
}

type TournamentFilterRequest struct {
	Status   string `form:"status" json:"status"`
	Category string `form:"category" json:"category"`
}

func (req *TournamentFilterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(string(domain.TournamentOpen), string(domain.TournamentClosed))),
		validation.Field(&req.Category,
			validation.In(string(domain.CategoryPutra), string(domain.CategoryPutri), string(domain.CategoryMixed))),
	)
}
