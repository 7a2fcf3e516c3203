package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchUpcoming   MatchStatus = "a_venir"
	MatchInProgress MatchStatus = "en_cours"
	MatchFinished   MatchStatus = "termine"
	MatchPostponed  MatchStatus = "reporte"
)

var MatchStatuses = []MatchStatus{MatchUpcoming, MatchInProgress, MatchFinished, MatchPostponed}

type Match struct {
	ID            uuid.UUID    `json:"id"`
	OpponentTeam  string       `json:"opponent_team"`
	MatchDate     time.Time    `json:"match_date"`
	Venue         string       `json:"venue"`
	IsHome        bool         `json:"is_home"`
	HomeScore     *int         `json:"home_score,omitempty"`
	AwayScore     *int         `json:"away_score,omitempty"`
	Status        MatchStatus  `json:"status"`
	CompetitionID *uuid.UUID   `json:"competition_id,omitempty"`
	Competition   *Competition `json:"competition,omitempty"`
	Notes         string       `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// MatchFilter narrows match listings. Zero values mean no filter.
type MatchFilter struct {
	Status MatchStatus
	From   *time.Time
	Limit  int
}
