package domain

import (
	"time"

	"github.com/google/uuid"
)

type OfficialPosition string

const (
	OfficialManager        OfficialPosition = "Manajer"
	OfficialCoach          OfficialPosition = "Pelatih"
	OfficialAssistantCoach OfficialPosition = "Asisten Pelatih"
	OfficialMedic          OfficialPosition = "Medis"
)

// OfficialPositions lists every role; each may be filled once per team.
var OfficialPositions = []OfficialPosition{
	OfficialManager,
	OfficialCoach,
	OfficialAssistantCoach,
	OfficialMedic,
}

type Official struct {
	ID        uuid.UUID        `json:"id"`
	TeamID    uuid.UUID        `json:"teamId"`
	Name      string           `json:"name"`
	Posisi    OfficialPosition `json:"posisi"`
	Phone     string           `json:"phone"`
	PhotoURL  string           `json:"photoUrl"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
