package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Registration, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]dao.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) (dao.Registration, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		TournamentID:  registration.TournamentID,
		TeamID:        registration.TeamID,
		Status:        string(registration.Status),
		PaymentStatus: string(registration.PaymentStatus),
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", asConflict(err, "registration", func(string) string {
			return registration.TeamID.String()
		}))
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Registration, error) {
	found, err := r.dao.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByTournament -> %w", err)
	}

	registrations := make([]domain.Registration, 0, len(found))
	for _, reg := range found {
		registrations = append(registrations, r.daoToDomain(reg))
	}

	return registrations, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, payment domain.PaymentStatus) (domain.Registration, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status), string(payment))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:            reg.ID,
		TournamentID:  reg.TournamentID,
		TeamID:        reg.TeamID,
		Status:        domain.RegistrationStatus(reg.Status),
		PaymentStatus: domain.PaymentStatus(reg.PaymentStatus),
		CreatedAt:     reg.CreatedAt,
		UpdatedAt:     reg.UpdatedAt,
	}
}
