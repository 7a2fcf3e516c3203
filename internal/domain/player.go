package domain

import (
	"time"

	"github.com/google/uuid"
)

type Position string

const (
	PositionGoalkeeper Position = "gardien"
	PositionDefender   Position = "defenseur"
	PositionMidfielder Position = "milieu"
	PositionForward    Position = "attaquant"
)

var Positions = []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward}

func (p Position) Valid() bool {
	for _, v := range Positions {
		if v == p {
			return true
		}
	}
	return false
}

type Player struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	JerseyNumber int       `json:"jersey_number"`
	Position     Position  `json:"position"`
	Age          *int      `json:"age,omitempty"`
	HeightCM     *int      `json:"height_cm,omitempty"`
	WeightKG     *int      `json:"weight_kg,omitempty"`
	PhotoURL     string    `json:"photo_url"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
