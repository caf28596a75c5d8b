package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Official struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_officials_team_posisi,priority:1"`
	Name      string    `gorm:"not null"`
	Posisi    string    `gorm:"not null;uniqueIndex:idx_officials_team_posisi,priority:2"`
	Phone     string
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Official) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OfficialDAO struct {
	db *gorm.DB
}

func NewOfficialDAO(db *gorm.DB) *OfficialDAO {
	return &OfficialDAO{
		db: db,
	}
}

func (d *OfficialDAO) Insert(ctx context.Context, official Official) (Official, error) {
	result := d.db.WithContext(ctx).Create(&official)
	if result.Error != nil {
		return Official{}, translate(result.Error)
	}

	return official, nil
}

func (d *OfficialDAO) FindByID(ctx context.Context, id uuid.UUID) (Official, error) {
	var official Official

	result := d.db.WithContext(ctx).First(&official, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Official{}, ErrOfficialNotFound
		}

		return Official{}, result.Error
	}

	return official, nil
}

func (d *OfficialDAO) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Official, error) {
	var officials []Official

	result := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at ASC").Find(&officials)
	if result.Error != nil {
		return nil, result.Error
	}

	return officials, nil
}

func (d *OfficialDAO) Update(ctx context.Context, official Official) (Official, error) {
	result := d.db.WithContext(ctx).
		Model(&Official{ID: official.ID}).
		Select("Name", "Posisi", "Phone", "PhotoURL").
		Updates(&official)
	if result.Error != nil {
		return Official{}, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return Official{}, ErrOfficialNotFound
	}

	return d.FindByID(ctx, official.ID)
}

func (d *OfficialDAO) Delete(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).Delete(&Official{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfficialNotFound
	}

	return nil
}

// PositionTaken reports whether posisi is already filled in the team by
// anyone other than excludeID.
func (d *OfficialDAO) PositionTaken(ctx context.Context, teamID uuid.UUID, posisi string, excludeID uuid.UUID) (bool, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Official{}).Where("team_id = ? AND posisi = ?", teamID, posisi)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
