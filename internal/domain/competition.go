package domain

import (
	"time"

	"github.com/google/uuid"
)

type CompetitionType string

const (
	CompetitionLeague     CompetitionType = "championnat"
	CompetitionCup        CompetitionType = "coupe"
	CompetitionFriendly   CompetitionType = "amical"
	CompetitionTournament CompetitionType = "tournoi"
)

var CompetitionTypes = []CompetitionType{CompetitionLeague, CompetitionCup, CompetitionFriendly, CompetitionTournament}

type Competition struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      CompetitionType `json:"type"`
	Season    string          `json:"season"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
