package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Registration struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TournamentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_tournament_team,priority:1"`
	TeamID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_registrations_tournament_team,priority:2"`
	Status        string    `gorm:"not null;default:pending"`
	PaymentStatus string    `gorm:"not null;default:unpaid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Registration) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		return Registration{}, translate(result.Error)
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uuid.UUID) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("created_at ASC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus string) (Registration, error) {
	updates := map[string]any{}
	if status != "" {
		updates["status"] = status
	}
	if paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}
	if len(updates) == 0 {
		return d.FindByID(ctx, id)
	}

	result := d.db.WithContext(ctx).Model(&Registration{ID: id}).Updates(updates)
	if result.Error != nil {
		return Registration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Registration{}, ErrRegistrationNotFound
	}

	return d.FindByID(ctx, id)
}
