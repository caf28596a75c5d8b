package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team) (dao.Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Team, error)
	FindByToken(ctx context.Context, token string) (dao.Team, error)
	FindRoster(ctx context.Context, id uuid.UUID) (dao.Team, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]dao.Team, error)
	Update(ctx context.Context, team dao.Team) (dao.Team, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	NameGenderExists(ctx context.Context, name, gender string, excludeID uuid.UUID) (bool, error)
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

// Create inserts the team. A token collision is returned as-is so callers can
// detect it with IsTokenCollision; other unique violations become conflicts.
func (r *TeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(team))
	if err != nil {
		if IsTokenCollision(err) {
			return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
		}
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", asConflict(err, "team", r.fieldValue(team)))
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindByToken(ctx context.Context, token string) (domain.Team, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindRoster returns the team with players, officials and jersey; the
// tournament summary is left for the caller to fill in.
func (r *TeamRepository) FindRoster(ctx context.Context, id uuid.UUID) (domain.TeamRoster, error) {
	found, err := r.dao.FindRoster(ctx, id)
	if err != nil {
		return domain.TeamRoster{}, fmt.Errorf("r.dao.FindRoster -> %w", err)
	}

	roster := domain.TeamRoster{
		Team:      r.daoToDomain(found),
		Players:   make([]domain.Player, 0, len(found.Players)),
		Officials: make([]domain.Official, 0, len(found.Officials)),
	}
	for _, p := range found.Players {
		roster.Players = append(roster.Players, playerDaoToDomain(p))
	}
	for _, o := range found.Officials {
		roster.Officials = append(roster.Officials, officialDaoToDomain(o))
	}
	if found.Jersey != nil {
		jersey := jerseyDaoToDomain(*found.Jersey)
		roster.Jersey = &jersey
	}

	return roster, nil
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Team, error) {
	found, err := r.dao.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByTournament -> %w", err)
	}

	teams := make([]domain.Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, r.daoToDomain(t))
	}

	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team domain.Team) (domain.Team, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(team))
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Update -> %w", asConflict(err, "team", r.fieldValue(team)))
	}

	return r.daoToDomain(updated), nil
}

func (r *TeamRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	exists, err := r.dao.TokenExists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("r.dao.TokenExists -> %w", err)
	}

	return exists, nil
}

func (r *TeamRepository) NameGenderExists(ctx context.Context, name string, gender domain.Gender, excludeID uuid.UUID) (bool, error) {
	exists, err := r.dao.NameGenderExists(ctx, name, string(gender), excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.NameGenderExists -> %w", err)
	}

	return exists, nil
}

func (r *TeamRepository) fieldValue(team domain.Team) func(string) string {
	return func(field string) string {
		switch field {
		case "name":
			return team.Name
		case "token":
			return team.Token
		}
		return ""
	}
}

func (r *TeamRepository) domainToDao(t domain.Team) dao.Team {
	return dao.Team{
		ID:           t.ID,
		Name:         t.Name,
		Gender:       string(t.Gender),
		TournamentID: t.TournamentID,
		Logo:         t.Logo,
		Token:        t.Token,
	}
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:           t.ID,
		Name:         t.Name,
		Gender:       domain.Gender(t.Gender),
		TournamentID: t.TournamentID,
		Logo:         t.Logo,
		Token:        t.Token,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
