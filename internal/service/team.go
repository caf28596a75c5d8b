package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
)

var (
	ErrTeamNotFound     = repository.ErrTeamNotFound
	ErrGenderNotAllowed = errors.New("team gender does not match the tournament category")
)

type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
	FindByToken(ctx context.Context, token string) (domain.Team, error)
	FindRoster(ctx context.Context, id uuid.UUID) (domain.TeamRoster, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Team, error)
	Update(ctx context.Context, team domain.Team) (domain.Team, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	NameGenderExists(ctx context.Context, name string, gender domain.Gender, excludeID uuid.UUID) (bool, error)
}

type TeamTournamentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Tournament, error)
}

type TeamService struct {
	repo        TeamRepository
	tournaments TeamTournamentRepository
	cascader    Cascader
	assets      AssetLister
	storage     ObjectStorage
	newToken    TokenGenerator
	maxAttempts int
}

func NewTeamService(
	repo TeamRepository,
	tournaments TeamTournamentRepository,
	cascader Cascader,
	assets AssetLister,
	storage ObjectStorage,
	maxAttempts int,
) *TeamService {
	return &TeamService{
		repo:        repo,
		tournaments: tournaments,
		cascader:    cascader,
		assets:      assets,
		storage:     storage,
		newToken:    RandomToken,
		maxAttempts: maxAttempts,
	}
}

// CreateTeam registers a team in its tournament and mints its token. The
// token is regenerated when it collides with an existing one, up to
// maxAttempts draws.
func (s *TeamService) CreateTeam(ctx context.Context, team domain.Team, logo *domain.Upload) (domain.Team, error) {
	if err := s.checkTeam(ctx, team, uuid.Nil); err != nil {
		return domain.Team{}, err
	}

	url, err := upload(ctx, s.storage, folderLogos, logo)
	if err != nil {
		return domain.Team{}, err
	}
	team.Logo = url

	created, err := s.insertWithToken(ctx, team)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Team{}, err
	}

	return created, nil
}

func (s *TeamService) insertWithToken(ctx context.Context, team domain.Team) (domain.Team, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			return domain.Team{}, fmt.Errorf("s.newToken -> %w", err)
		}

		exists, err := s.repo.TokenExists(ctx, token)
		if err != nil {
			return domain.Team{}, fmt.Errorf("s.repo.TokenExists -> %w", err)
		}
		if exists {
			continue
		}

		team.Token = token
		created, err := s.repo.Create(ctx, team)
		if err == nil {
			return created, nil
		}
		if !repository.IsTokenCollision(err) {
			return domain.Team{}, fmt.Errorf("s.repo.Create -> %w", err)
		}

		zap.L().Debug("team token collided, retrying", zap.Int("attempt", attempt))
	}

	return domain.Team{}, ErrTokenSpaceExhausted
}

// checkTeam validates the team against its tournament and the (name, gender)
// uniqueness rule, ignoring excludeID.
func (s *TeamService) checkTeam(ctx context.Context, team domain.Team, excludeID uuid.UUID) error {
	tournament, err := s.tournaments.FindByID(ctx, team.TournamentID)
	if err != nil {
		return fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}
	if !tournament.Category.Accepts(team.Gender) {
		return ErrGenderNotAllowed
	}

	exists, err := s.repo.NameGenderExists(ctx, team.Name, team.Gender, excludeID)
	if err != nil {
		return fmt.Errorf("s.repo.NameGenderExists -> %w", err)
	}
	if exists {
		return domain.NewConflict("team", "name", team.Name)
	}

	return nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (domain.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, tournamentID uuid.UUID) ([]domain.Team, error) {
	if _, err := s.tournaments.FindByID(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	teams, err := s.repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByTournament -> %w", err)
	}

	return teams, nil
}

// UpdateTeam changes name, gender and optionally the logo. The token and
// tournament never change.
func (s *TeamService) UpdateTeam(ctx context.Context, id uuid.UUID, name string, gender domain.Gender, logo *domain.Upload) (domain.Team, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	team := current
	team.Name = name
	team.Gender = gender
	if err := s.checkTeam(ctx, team, id); err != nil {
		return domain.Team{}, err
	}

	url, err := upload(ctx, s.storage, folderLogos, logo)
	if err != nil {
		return domain.Team{}, err
	}
	if url != "" {
		team.Logo = url
	}

	updated, err := s.repo.Update(ctx, team)
	if err != nil {
		discard(ctx, s.storage, url)
		return domain.Team{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if url != "" {
		discard(ctx, s.storage, current.Logo)
	}

	return updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) (cascade.Result, error) {
	urls := assetsOf(ctx, s.assets, cascade.Teams, id)

	result, err := s.cascader.DeleteTeam(ctx, id)
	if err != nil {
		if errors.Is(err, cascade.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("s.cascader.DeleteTeam -> %w", err)
	}

	discard(ctx, s.storage, urls...)

	return result, nil
}
