package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPutra Category = "putra"
	CategoryPutri Category = "putri"
	CategoryMixed Category = "mixed"
)

type TournamentStatus string

const (
	TournamentOpen   TournamentStatus = "open"
	TournamentClosed TournamentStatus = "closed"
)

var (
	ErrDeadlineNotBeforeStart = errors.New("registration deadline must be before the start date")
	ErrEndNotAfterStart       = errors.New("end date must be after the start date")
)

type Tournament struct {
	ID                   uuid.UUID        `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Category             Category         `json:"category"`
	Status               TournamentStatus `json:"status"`
	Location             string           `json:"location"`
	StartDate            time.Time        `json:"startDate"`
	EndDate              time.Time        `json:"endDate"`
	RegistrationDeadline time.Time        `json:"registrationDeadline"`
	MaxPlayersPerTeam    int              `json:"maxPlayersPerTeam"`
	PoolsPutra           int              `json:"poolsPutra"`
	PoolsPutri           int              `json:"poolsPutri"`
	EntryFee             int              `json:"entryFee"`
	TeamCount            int              `json:"teamCount"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// CheckSchedule enforces registrationDeadline < startDate < endDate.
func (t Tournament) CheckSchedule() error {
	if !t.RegistrationDeadline.Before(t.StartDate) {
		return ErrDeadlineNotBeforeStart
	}
	if !t.EndDate.After(t.StartDate) {
		return ErrEndNotAfterStart
	}
	return nil
}

// Accepts reports whether a team of gender g may enter a tournament of category c.
func (c Category) Accepts(g Gender) bool {
	switch c {
	case CategoryMixed:
		return g == GenderPutra || g == GenderPutri
	case CategoryPutra:
		return g == GenderPutra
	case CategoryPutri:
		return g == GenderPutri
	}
	return false
}

type TournamentFilter struct {
	Status   TournamentStatus
	Category Category
}
