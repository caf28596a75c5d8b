package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Tournament struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"not null"`
	Description          string
	Category             string    `gorm:"not null;index"`
	Status               string    `gorm:"not null;index"`
	Location             string    `gorm:"not null"`
	StartDate            time.Time `gorm:"not null"`
	EndDate              time.Time `gorm:"not null"`
	RegistrationDeadline time.Time `gorm:"not null"`
	MaxPlayersPerTeam    int       `gorm:"not null"`
	PoolsPutra           int       `gorm:"not null;default:0"`
	PoolsPutri           int       `gorm:"not null;default:0"`
	EntryFee             int       `gorm:"not null;default:0"`
	Teams                []Team         `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
	Registrations        []Registration `gorm:"foreignKey:TournamentID"`
	TeamCount            int            `gorm:"->;-:migration"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (t *Tournament) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TournamentFilter struct {
	Status   string
	Category string
}

type TournamentDAO struct {
	db *gorm.DB
}

func NewTournamentDAO(db *gorm.DB) *TournamentDAO {
	return &TournamentDAO{
		db: db,
	}
}

func (d *TournamentDAO) Insert(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&tournament)
	if result.Error != nil {
		return Tournament{}, translate(result.Error)
	}

	return tournament, nil
}

func (d *TournamentDAO) FindByID(ctx context.Context, id uuid.UUID) (Tournament, error) {
	var tournament Tournament

	result := d.withTeamCount(ctx).First(&tournament, "tournaments.id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tournament{}, ErrTournamentNotFound
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) List(ctx context.Context, filter TournamentFilter) ([]Tournament, error) {
	var tournaments []Tournament

	query := d.withTeamCount(ctx)
	if filter.Status != "" {
		query = query.Where("tournaments.status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("tournaments.category = ?", filter.Category)
	}

	result := query.Order("tournaments.start_date ASC").Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	return tournaments, nil
}

func (d *TournamentDAO) Update(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).
		Model(&Tournament{ID: tournament.ID}).
		Select("Name", "Description", "Category", "Status", "Location", "StartDate", "EndDate",
			"RegistrationDeadline", "MaxPlayersPerTeam", "PoolsPutra", "PoolsPutri", "EntryFee").
		Updates(&tournament)
	if result.Error != nil {
		return Tournament{}, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return Tournament{}, ErrTournamentNotFound
	}

	return d.FindByID(ctx, tournament.ID)
}

func (d *TournamentDAO) withTeamCount(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Model(&Tournament{}).
		Select("tournaments.*, (SELECT COUNT(*) FROM teams WHERE teams.tournament_id = tournaments.id) AS team_count")
}
