package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Team struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name          string         `gorm:"not null;uniqueIndex:idx_teams_name_gender,priority:1"`
	Gender        string         `gorm:"not null;uniqueIndex:idx_teams_name_gender,priority:2"`
	TournamentID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Logo          string
	Token         string         `gorm:"size:8;not null;uniqueIndex:idx_teams_token"`
	Players       []Player       `gorm:"foreignKey:TeamID"`
	Officials     []Official     `gorm:"foreignKey:TeamID"`
	Jersey        *TeamJersey    `gorm:"foreignKey:TeamID"`
	Registrations []Registration `gorm:"foreignKey:TeamID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t *Team) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&team)
	if result.Error != nil {
		return Team{}, translate(result.Error)
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uuid.UUID) (Team, error) {
	return d.first(ctx, "id = ?", id)
}

func (d *TeamDAO) FindByToken(ctx context.Context, token string) (Team, error) {
	return d.first(ctx, "token = ?", token)
}

func (d *TeamDAO) first(ctx context.Context, query string, arg any) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

// FindRoster loads a team together with its players, officials and jersey.
func (d *TeamDAO) FindRoster(ctx context.Context, id uuid.UUID) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("no_jersey ASC") }).
		Preload("Officials", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Jersey").
		First(&team, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("gender ASC, name ASC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) Update(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).
		Model(&Team{ID: team.ID}).
		Select("Name", "Gender", "Logo").
		Updates(&team)
	if result.Error != nil {
		return Team{}, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return Team{}, ErrTeamNotFound
	}

	return d.FindByID(ctx, team.ID)
}

func (d *TeamDAO) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Team{}).Where("token = ?", token).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// NameGenderExists reports whether another team (not excludeID) already uses
// the (name, gender) pair.
func (d *TeamDAO) NameGenderExists(ctx context.Context, name, gender string, excludeID uuid.UUID) (bool, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Team{}).Where("name = ? AND gender = ?", name, gender)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
