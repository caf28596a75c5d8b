package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/repository/dao"
)

type OfficialDAO interface {
	Insert(ctx context.Context, official dao.Official) (dao.Official, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Official, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]dao.Official, error)
	Update(ctx context.Context, official dao.Official) (dao.Official, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PositionTaken(ctx context.Context, teamID uuid.UUID, posisi string, excludeID uuid.UUID) (bool, error)
}

type OfficialRepository struct {
	dao OfficialDAO
}

func NewOfficialRepository(dao OfficialDAO) *OfficialRepository {
	return &OfficialRepository{
		dao: dao,
	}
}

func (r *OfficialRepository) Create(ctx context.Context, official domain.Official) (domain.Official, error) {
	created, err := r.dao.Insert(ctx, officialDomainToDao(official))
	if err != nil {
		return domain.Official{}, fmt.Errorf("r.dao.Insert -> %w", asConflict(err, "official", officialFieldValue(official)))
	}

	return officialDaoToDomain(created), nil
}

func (r *OfficialRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Official, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Official{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return officialDaoToDomain(found), nil
}

func (r *OfficialRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Official, error) {
	found, err := r.dao.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByTeam -> %w", err)
	}

	officials := make([]domain.Official, 0, len(found))
	for _, o := range found {
		officials = append(officials, officialDaoToDomain(o))
	}

	return officials, nil
}

func (r *OfficialRepository) Update(ctx context.Context, official domain.Official) (domain.Official, error) {
	updated, err := r.dao.Update(ctx, officialDomainToDao(official))
	if err != nil {
		return domain.Official{}, fmt.Errorf("r.dao.Update -> %w", asConflict(err, "official", officialFieldValue(official)))
	}

	return officialDaoToDomain(updated), nil
}

func (r *OfficialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *OfficialRepository) PositionTaken(ctx context.Context, teamID uuid.UUID, posisi domain.OfficialPosition, excludeID uuid.UUID) (bool, error) {
	taken, err := r.dao.PositionTaken(ctx, teamID, string(posisi), excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.PositionTaken -> %w", err)
	}

	return taken, nil
}

func officialFieldValue(o domain.Official) func(string) string {
	return func(field string) string {
		if field == "posisi" {
			return string(o.Posisi)
		}
		return ""
	}
}

func officialDomainToDao(o domain.Official) dao.Official {
	return dao.Official{
		ID:       o.ID,
		TeamID:   o.TeamID,
		Name:     o.Name,
		Posisi:   string(o.Posisi),
		Phone:    o.Phone,
		PhotoURL: o.PhotoURL,
	}
}

func officialDaoToDomain(o dao.Official) domain.Official {
	return domain.Official{
		ID:        o.ID,
		TeamID:    o.TeamID,
		Name:      o.Name,
		Posisi:    domain.OfficialPosition(o.Posisi),
		Phone:     o.Phone,
		PhotoURL:  o.PhotoURL,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
