package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type TournamentDAO interface {
	Insert(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Tournament, error)
	List(ctx context.Context, filter dao.TournamentFilter) ([]dao.Tournament, error)
	Update(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
}

type TournamentRepository struct {
	dao TournamentDAO
}

func NewTournamentRepository(dao TournamentDAO) *TournamentRepository {
	return &TournamentRepository{
		dao: dao,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(tournament))
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TournamentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Tournament, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TournamentRepository) List(ctx context.Context, filter domain.TournamentFilter) ([]domain.Tournament, error) {
	found, err := r.dao.List(ctx, dao.TournamentFilter{
		Status:   string(filter.Status),
		Category: string(filter.Category),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	tournaments := make([]domain.Tournament, 0, len(found))
	for _, t := range found {
		tournaments = append(tournaments, r.daoToDomain(t))
	}

	return tournaments, nil
}

func (r *TournamentRepository) Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(tournament))
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TournamentRepository) domainToDao(t domain.Tournament) dao.Tournament {
	return dao.Tournament{
		ID:                   t.ID,
		Name:                 t.Name,
		Description:          t.Description,
		Category:             string(t.Category),
		Status:               string(t.Status),
		Location:             t.Location,
		StartDate:            t.StartDate,
		EndDate:              t.EndDate,
		RegistrationDeadline: t.RegistrationDeadline,
		MaxPlayersPerTeam:    t.MaxPlayersPerTeam,
		PoolsPutra:           t.PoolsPutra,
		PoolsPutri:           t.PoolsPutri,
		EntryFee:             t.EntryFee,
	}
}

func (r *TournamentRepository) daoToDomain(t dao.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:                   t.ID,
		Name:                 t.Name,
		Description:          t.Description,
		Category:             domain.Category(t.Category),
		Status:               domain.TournamentStatus(t.Status),
		Location:             t.Location,
		StartDate:            t.StartDate,
		EndDate:              t.EndDate,
		RegistrationDeadline: t.RegistrationDeadline,
		MaxPlayersPerTeam:    t.MaxPlayersPerTeam,
		PoolsPutra:           t.PoolsPutra,
		PoolsPutri:           t.PoolsPutri,
		EntryFee:             t.EntryFee,
		TeamCount:            t.TeamCount,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
