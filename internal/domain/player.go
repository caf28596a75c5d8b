package domain

import (
	"time"

	"github.com/google/uuid"
)

type Position string

const (
	PositionOutsideHitter       Position = "Outside Hitter"
	PositionOpposite            Position = "Opposite"
	PositionMiddleBlocker       Position = "Middle Blocker"
	PositionSetter              Position = "Setter"
	PositionLibero              Position = "Libero"
	PositionDefensiveSpecialist Position = "Defensive Specialist"
)

var Positions = []Position{
	PositionOutsideHitter,
	PositionOpposite,
	PositionMiddleBlocker,
	PositionSetter,
	PositionLibero,
	PositionDefensiveSpecialist,
}

type Player struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"teamId"`
	Name        string    `json:"name"`
	JerseyName  string    `json:"jerseyName"`
	NoJersey    int       `json:"noJersey"`
	BirthPlace  string    `json:"birthPlace"`
	BirthDate   time.Time `json:"birthDate"`
	HeightCm    int       `json:"heightCm"`
	WeightKg    int       `json:"weightKg"`
	Position    Position  `json:"position"`
	NIK         *string   `json:"nik"`
	NISN        *string   `json:"nisn"`
	SchoolName  string    `json:"schoolName"`
	SchoolClass string    `json:"schoolClass"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
