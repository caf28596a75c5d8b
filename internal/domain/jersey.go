package domain

import (
	"time"

	"github.com/google/uuid"
)

type TeamJersey struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"teamId"`
	Primary   *string   `json:"primaryColor"`
	Secondary *string   `json:"secondaryColor"`
	Tertiary  *string   `json:"tertiaryColor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
