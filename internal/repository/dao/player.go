package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Player struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_players_team_jersey,priority:1"`
	Name        string     `gorm:"not null"`
	JerseyName  string     `gorm:"not null"`
	NoJersey    int        `gorm:"not null;uniqueIndex:idx_players_team_jersey,priority:2"`
	BirthPlace  string
	BirthDate   time.Time  `gorm:"not null"`
	HeightCm    int        `gorm:"not null;default:0"`
	WeightKg    int        `gorm:"not null;default:0"`
	Position    string     `gorm:"not null"`
	NIK         *string    `gorm:"column:nik;size:16;uniqueIndex:idx_players_nik"`
	NISN        *string    `gorm:"column:nisn;size:10;uniqueIndex:idx_players_nisn"`
	SchoolName  string
	SchoolClass string
	PhotoURL    string
	Documents   []Document `gorm:"foreignKey:PlayerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Player) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Document struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlayerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType  string    `gorm:"not null"`
	DocumentLabel string
	FileName      string    `gorm:"not null"`
	FileURL       string    `gorm:"not null"`
	FileSize      int64     `gorm:"not null"`
	MimeType      string    `gorm:"not null"`
	CreatedAt     time.Time
}

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type PlayerDAO struct {
	db *gorm.DB
}

func NewPlayerDAO(db *gorm.DB) *PlayerDAO {
	return &PlayerDAO{
		db: db,
	}
}

func (d *PlayerDAO) Insert(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&player)
	if result.Error != nil {
		return Player{}, translate(result.Error)
	}

	return player, nil
}

func (d *PlayerDAO) FindByID(ctx context.Context, id uuid.UUID) (Player, error) {
	var player Player

	result := d.db.WithContext(ctx).First(&player, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Player{}, ErrPlayerNotFound
		}

		return Player{}, result.Error
	}

	return player, nil
}

func (d *PlayerDAO) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Player, error) {
	var players []Player

	result := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("no_jersey ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (d *PlayerDAO) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Player{}).Where("team_id = ?", teamID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Update overwrites every editable column, including NIK/NISN set to NULL.
func (d *PlayerDAO) Update(ctx context.Context, player Player) (Player, error) {
	result := d.db.WithContext(ctx).
		Model(&Player{ID: player.ID}).
		Select("Name", "JerseyName", "NoJersey", "BirthPlace", "BirthDate", "HeightCm", "WeightKg",
			"Position", "NIK", "NISN", "SchoolName", "SchoolClass", "PhotoURL").
		Updates(&player)
	if result.Error != nil {
		return Player{}, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return Player{}, ErrPlayerNotFound
	}

	return d.FindByID(ctx, player.ID)
}

func (d *PlayerDAO) JerseyNumberTaken(ctx context.Context, teamID uuid.UUID, number int, excludeID uuid.UUID) (bool, error) {
	return d.exists(ctx, excludeID, "team_id = ? AND no_jersey = ?", teamID, number)
}

func (d *PlayerDAO) NIKTaken(ctx context.Context, nik string, excludeID uuid.UUID) (bool, error) {
	return d.exists(ctx, excludeID, "nik = ?", nik)
}

func (d *PlayerDAO) NISNTaken(ctx context.Context, nisn string, excludeID uuid.UUID) (bool, error) {
	return d.exists(ctx, excludeID, "nisn = ?", nisn)
}

func (d *PlayerDAO) exists(ctx context.Context, excludeID uuid.UUID, cond string, args ...any) (bool, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Player{}).Where(cond, args...)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *PlayerDAO) InsertDocument(ctx context.Context, document Document) (Document, error) {
	result := d.db.WithContext(ctx).Create(&document)
	if result.Error != nil {
		return Document{}, translate(result.Error)
	}

	return document, nil
}

func (d *PlayerDAO) ListDocuments(ctx context.Context, playerID uuid.UUID) ([]Document, error) {
	var documents []Document

	result := d.db.WithContext(ctx).Where("player_id = ?", playerID).Order("created_at ASC").Find(&documents)
	if result.Error != nil {
		return nil, result.Error
	}

	return documents, nil
}
