package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type JerseyDAO interface {
	Upsert(ctx context.Context, jersey dao.TeamJersey) (dao.TeamJersey, error)
	FindByTeam(ctx context.Context, teamID uuid.UUID) (dao.TeamJersey, error)
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) error
}

type JerseyRepository struct {
	dao JerseyDAO
}

func NewJerseyRepository(dao JerseyDAO) *JerseyRepository {
	return &JerseyRepository{
		dao: dao,
	}
}

func (r *JerseyRepository) Save(ctx context.Context, jersey domain.TeamJersey) (domain.TeamJersey, error) {
	saved, err := r.dao.Upsert(ctx, dao.TeamJersey{
		TeamID:    jersey.TeamID,
		Primary:   jersey.Primary,
		Secondary: jersey.Secondary,
		Tertiary:  jersey.Tertiary,
	})
	if err != nil {
		return domain.TeamJersey{}, fmt.Errorf("r.dao.Upsert -> %w", asConflict(err, "jersey", nil))
	}

	return jerseyDaoToDomain(saved), nil
}

func (r *JerseyRepository) FindByTeam(ctx context.Context, teamID uuid.UUID) (domain.TeamJersey, error) {
	found, err := r.dao.FindByTeam(ctx, teamID)
	if err != nil {
		return domain.TeamJersey{}, fmt.Errorf("r.dao.FindByTeam -> %w", err)
	}

	return jerseyDaoToDomain(found), nil
}

func (r *JerseyRepository) DeleteByTeam(ctx context.Context, teamID uuid.UUID) error {
	if err := r.dao.DeleteByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("r.dao.DeleteByTeam -> %w", err)
	}

	return nil
}

func jerseyDaoToDomain(j dao.TeamJersey) domain.TeamJersey {
	return domain.TeamJersey{
		ID:        j.ID,
		TeamID:    j.TeamID,
		Primary:   j.Primary,
		Secondary: j.Secondary,
		Tertiary:  j.Tertiary,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
