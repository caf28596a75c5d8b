package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
)

var (
	ErrTournamentNotFound = repository.ErrTournamentNotFound

	ErrCategoryExcludesTeams = errors.New("tournament category excludes registered teams")
	ErrRosterAboveLimit      = errors.New("a team roster exceeds the new player limit")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Tournament, error)
	List(ctx context.Context, filter domain.TournamentFilter) ([]domain.Tournament, error)
	Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
}

// TournamentTeams lists the teams an update must stay compatible with.
type TournamentTeams interface {
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Team, error)
}

type PlayerCounter interface {
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
}

type TournamentService struct {
	repo     TournamentRepository
	teams    TournamentTeams
	players  PlayerCounter
	cascader Cascader
	assets   AssetLister
	storage  ObjectStorage
}

func NewTournamentService(repo TournamentRepository, teams TournamentTeams, players PlayerCounter, cascader Cascader, assets AssetLister, storage ObjectStorage) *TournamentService {
	return &TournamentService{
		repo:     repo,
		teams:    teams,
		players:  players,
		cascader: cascader,
		assets:   assets,
		storage:  storage,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	if err := tournament.CheckSchedule(); err != nil {
		return domain.Tournament{}, err
	}
	if tournament.Status == "" {
		tournament.Status = domain.TournamentOpen
	}

	created, err := s.repo.Create(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (domain.Tournament, error) {
	tournament, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return tournament, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, filter domain.TournamentFilter) ([]domain.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return tournaments, nil
}

// GetOpenTournament hides closed tournaments from the public surface.
func (s *TournamentService) GetOpenTournament(ctx context.Context, id uuid.UUID) (domain.Tournament, error) {
	tournament, err := s.GetTournament(ctx, id)
	if err != nil {
		return domain.Tournament{}, err
	}
	if tournament.Status != domain.TournamentOpen {
		return domain.Tournament{}, ErrTournamentNotFound
	}

	return tournament, nil
}

// UpdateTournament replaces the tournament's fields. An empty status keeps
// the stored one. The new category and player limit must still fit every
// team already in the tournament.
func (s *TournamentService) UpdateTournament(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	if err := tournament.CheckSchedule(); err != nil {
		return domain.Tournament{}, err
	}

	current, err := s.repo.FindByID(ctx, tournament.ID)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if tournament.Status == "" {
		tournament.Status = current.Status
	}
	if tournament.Category != current.Category || tournament.MaxPlayersPerTeam != current.MaxPlayersPerTeam {
		if err := s.checkTeamsFit(ctx, tournament); err != nil {
			return domain.Tournament{}, err
		}
	}

	updated, err := s.repo.Update(ctx, tournament)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TournamentService) checkTeamsFit(ctx context.Context, tournament domain.Tournament) error {
	teams, err := s.teams.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return fmt.Errorf("s.teams.ListByTournament -> %w", err)
	}

	for _, team := range teams {
		if !tournament.Category.Accepts(team.Gender) {
			return ErrCategoryExcludesTeams
		}
		if tournament.MaxPlayersPerTeam <= 0 {
			continue
		}
		count, err := s.players.CountByTeam(ctx, team.ID)
		if err != nil {
			return fmt.Errorf("s.players.CountByTeam -> %w", err)
		}
		if count > tournament.MaxPlayersPerTeam {
			return ErrRosterAboveLimit
		}
	}

	return nil
}

// DeleteTournament removes the tournament with its teams, rosters and
// registrations. Stored files are cleaned up after the commit.
func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) (cascade.Result, error) {
	urls := assetsOf(ctx, s.assets, cascade.Tournaments, id)

	result, err := s.cascader.DeleteTournament(ctx, id)
	if err != nil {
		if errors.Is(err, cascade.ErrNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("s.cascader.DeleteTournament -> %w", err)
	}

	discard(ctx, s.storage, urls...)

	return result, nil
}
