package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamJersey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_jerseys_team_id"`
	Primary   *string   `gorm:"column:primary_color"`
	Secondary *string   `gorm:"column:secondary_color"`
	Tertiary  *string   `gorm:"column:tertiary_color"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j *TeamJersey) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

type JerseyDAO struct {
	db *gorm.DB
}

func NewJerseyDAO(db *gorm.DB) *JerseyDAO {
	return &JerseyDAO{
		db: db,
	}
}

// Upsert writes the team's single jersey row, replacing the colours when one
// already exists.
func (d *JerseyDAO) Upsert(ctx context.Context, jersey TeamJersey) (TeamJersey, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"primary_color", "secondary_color", "tertiary_color", "updated_at"}),
		}).
		Create(&jersey)
	if result.Error != nil {
		return TeamJersey{}, translate(result.Error)
	}

	return d.FindByTeam(ctx, jersey.TeamID)
}

func (d *JerseyDAO) FindByTeam(ctx context.Context, teamID uuid.UUID) (TeamJersey, error) {
	var jersey TeamJersey

	result := d.db.WithContext(ctx).First(&jersey, "team_id = ?", teamID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TeamJersey{}, ErrJerseyNotFound
		}

		return TeamJersey{}, result.Error
	}

	return jersey, nil
}

func (d *JerseyDAO) DeleteByTeam(ctx context.Context, teamID uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&TeamJersey{}, "team_id = ?", teamID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJerseyNotFound
	}

	return nil
}
