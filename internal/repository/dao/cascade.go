package dao

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/volleyhub/registration-api/internal/cascade"
)

// CascadeDAO runs cascade plans against the gorm store.
type CascadeDAO struct {
	db *gorm.DB
}

func NewCascadeDAO(db *gorm.DB) *CascadeDAO {
	return &CascadeDAO{
		db: db,
	}
}

func (d *CascadeDAO) Transaction(ctx context.Context, fn func(tx cascade.Tx) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cascadeTx{db: tx})
	})
}

type cascadeTx struct {
	db *gorm.DB
}

func modelFor(entity cascade.Entity) (any, error) {
	switch entity {
	case cascade.Documents:
		return &Document{}, nil
	case cascade.Players:
		return &Player{}, nil
	case cascade.Officials:
		return &Official{}, nil
	case cascade.Jerseys:
		return &TeamJersey{}, nil
	case cascade.Registrations:
		return &Registration{}, nil
	case cascade.Teams:
		return &Team{}, nil
	case cascade.Tournaments:
		return &Tournament{}, nil
	}

	return nil, fmt.Errorf("unknown entity %q", entity)
}

func (t *cascadeTx) Exists(ctx context.Context, entity cascade.Entity, id uuid.UUID) (bool, error) {
	model, err := modelFor(entity)
	if err != nil {
		return false, err
	}

	var count int64
	if err := t.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (t *cascadeTx) IDs(ctx context.Context, entity cascade.Entity, column string, parents []uuid.UUID) ([]uuid.UUID, error) {
	if len(parents) == 0 {
		return nil, nil
	}

	model, err := modelFor(entity)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	if err := t.db.WithContext(ctx).Model(model).Where(column+" IN ?", parents).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (t *cascadeTx) Delete(ctx context.Context, step cascade.Step) (int64, error) {
	model, err := modelFor(step.Entity)
	if err != nil {
		return 0, err
	}

	result := t.db.WithContext(ctx).Where(step.Column+" IN ?", step.IDs).Delete(model)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// AssetURLs lists the uploaded files (logos, photos, documents) referenced by
// the rows a cascade on target would remove. It runs outside the deletion
// transaction; the result is only used for best-effort storage cleanup.
func (d *CascadeDAO) AssetURLs(ctx context.Context, target cascade.Entity, id uuid.UUID) ([]string, error) {
	db := d.db.WithContext(ctx)

	var teamIDs, playerIDs []uuid.UUID
	switch target {
	case cascade.Tournaments:
		if err := db.Model(&Team{}).Where("tournament_id = ?", id).Pluck("id", &teamIDs).Error; err != nil {
			return nil, err
		}
	case cascade.Teams:
		teamIDs = []uuid.UUID{id}
	case cascade.Players:
		playerIDs = []uuid.UUID{id}
	default:
		return nil, fmt.Errorf("unknown entity %q", target)
	}

	if len(teamIDs) > 0 {
		if err := db.Model(&Player{}).Where("team_id IN ?", teamIDs).Pluck("id", &playerIDs).Error; err != nil {
			return nil, err
		}
	}

	var urls []string
	pluck := func(model any, column, fk string, ids []uuid.UUID) error {
		if len(ids) == 0 {
			return nil
		}

		var found []string
		if err := db.Model(model).Where(fk+" IN ?", ids).Where(column+" <> ''").Pluck(column, &found).Error; err != nil {
			return err
		}
		urls = append(urls, found...)
		return nil
	}

	if err := pluck(&Team{}, "logo", "id", teamIDs); err != nil {
		return nil, err
	}
	if err := pluck(&Official{}, "photo_url", "team_id", teamIDs); err != nil {
		return nil, err
	}
	if err := pluck(&Player{}, "photo_url", "id", playerIDs); err != nil {
		return nil, err
	}
	if err := pluck(&Document{}, "file_url", "player_id", playerIDs); err != nil {
		return nil, err
	}

	return urls, nil
}
