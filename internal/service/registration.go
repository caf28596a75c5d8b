package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrTeamNotInTournament  = errors.New("team does not belong to this tournament")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, payment domain.PaymentStatus) (domain.Registration, error)
}

type RegistrationTeamRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Team, error)
}

type RegistrationService struct {
	repo        RegistrationRepository
	tournaments TeamTournamentRepository
	teams       RegistrationTeamRepository
}

func NewRegistrationService(repo RegistrationRepository, tournaments TeamTournamentRepository, teams RegistrationTeamRepository) *RegistrationService {
	return &RegistrationService{
		repo:        repo,
		tournaments: tournaments,
		teams:       teams,
	}
}

func (s *RegistrationService) ListRegistrations(ctx context.Context, tournamentID uuid.UUID) ([]domain.Registration, error) {
	if _, err := s.tournaments.FindByID(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	registrations, err := s.repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByTournament -> %w", err)
	}

	return registrations, nil
}

// Register enters an existing team of the tournament as pending and unpaid.
func (s *RegistrationService) Register(ctx context.Context, tournamentID, teamID uuid.UUID) (domain.Registration, error) {
	if _, err := s.tournaments.FindByID(ctx, tournamentID); err != nil {
		return domain.Registration{}, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}
	if team.TournamentID != tournamentID {
		return domain.Registration{}, ErrTeamNotInTournament
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		TournamentID:  tournamentID,
		TeamID:        teamID,
		Status:        domain.RegistrationPending,
		PaymentStatus: domain.PaymentUnpaid,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateStatus changes the registration and/or payment status; empty values
// are left as they are.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, payment domain.PaymentStatus) (domain.Registration, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status, payment)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}
