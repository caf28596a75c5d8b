package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderPutra Gender = "putra"
	GenderPutri Gender = "putri"
)

// TokenLength is the length of the opaque team token handed to team managers.
const TokenLength = 8

type Team struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Gender       Gender    `json:"gender"`
	TournamentID uuid.UUID `json:"tournamentId"`
	Logo         string    `json:"logo"`
	Token        string    `json:"token,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TeamRoster is the public view of a team reached through its token.
type TeamRoster struct {
	Team       Team        `json:"team"`
	Tournament Tournament  `json:"tournament"`
	Players    []Player    `json:"players"`
	Officials  []Official  `json:"officials"`
	Jersey     *TeamJersey `json:"jersey"`
}
