package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	PositionSetVersion = 1

	MinPercent = 10.0
	MaxPercent = 90.0
)

var ErrInvalidPitch = errors.New("pitch dimensions must be positive")

type Composition struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Formation string      `json:"formation"`
	Positions PositionSet `json:"player_positions"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PlayerPosition struct {
	PlayerID uuid.UUID `json:"player_id"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

// PositionSet is the persisted board state: the formation and the custom
// positions dragged by the user.
type PositionSet struct {
	Version   int              `json:"version"`
	Formation string           `json:"formation"`
	Positions []PlayerPosition `json:"positions"`
}

func NewPositionSet(formation string) PositionSet {
	return PositionSet{
		Version:   PositionSetVersion,
		Formation: formation,
		Positions: []PlayerPosition{},
	}
}

// Upsert stores a clamped position for the player, replacing any previous one.
func (s *PositionSet) Upsert(playerID uuid.UUID, x, y float64) PlayerPosition {
	pos := PlayerPosition{PlayerID: playerID, X: ClampPercent(x), Y: ClampPercent(y)}
	for i := range s.Positions {
		if s.Positions[i].PlayerID == playerID {
			s.Positions[i] = pos
			return pos
		}
	}
	s.Positions = append(s.Positions, pos)
	return pos
}

func (s *PositionSet) Remove(playerID uuid.UUID) bool {
	for i := range s.Positions {
		if s.Positions[i].PlayerID == playerID {
			s.Positions = append(s.Positions[:i], s.Positions[i+1:]...)
			return true
		}
	}
	return false
}

func (s PositionSet) Lookup(playerID uuid.UUID) (PlayerPosition, bool) {
	for _, p := range s.Positions {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return PlayerPosition{}, false
}

type legacyPosition struct {
	PlayerID uuid.UUID `json:"playerId"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

type positionSetFields PositionSet

// UnmarshalJSON accepts the versioned object as well as the bare
// [{playerId,x,y}] array written by older clients.
func (s *PositionSet) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = NewPositionSet("")
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var legacy []legacyPosition
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return err
		}
		set := NewPositionSet("")
		for _, p := range legacy {
			set.Positions = append(set.Positions, PlayerPosition(p))
		}
		*s = set
		return nil
	}

	var fields positionSetFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	if fields.Version == 0 {
		fields.Version = PositionSetVersion
	}
	if fields.Positions == nil {
		fields.Positions = []PlayerPosition{}
	}
	*s = PositionSet(fields)
	return nil
}

func ClampPercent(v float64) float64 {
	if v < MinPercent {
		return MinPercent
	}
	if v > MaxPercent {
		return MaxPercent
	}
	return v
}

// Pitch is the rendered pitch size the pointer coordinates are relative to.
type Pitch struct {
	Width  float64
	Height float64
}

// PositionFromDrop converts a pointer release point, relative to the pitch's
// top-left corner, into clamped percentages.
func PositionFromDrop(pointerX, pointerY float64, pitch Pitch) (float64, float64, error) {
	if pitch.Width <= 0 || pitch.Height <= 0 {
		return 0, 0, ErrInvalidPitch
	}
	x := pointerX / pitch.Width * 100
	y := pointerY / pitch.Height * 100
	return ClampPercent(x), ClampPercent(y), nil
}

type PlacedPlayer struct {
	Player Player  `json:"player"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Custom bool    `json:"custom"`
}

type Board struct {
	Formation   string         `json:"formation"`
	Placed      []PlacedPlayer `json:"placed"`
	Substitutes []Player       `json:"substitutes"`
}

// BuildBoard lays players out on the pitch. Players with a custom position are
// placed there; the others fill their position's default slots in jersey
// number order and overflow into the substitutes list.
func BuildBoard(formationName string, players []Player, positions PositionSet) Board {
	formation, ok := FormationByName(formationName)
	if !ok {
		formation, _ = FormationByName(DefaultFormation)
	}

	board := Board{
		Formation:   formation.Name,
		Placed:      []PlacedPlayer{},
		Substitutes: []Player{},
	}

	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JerseyNumber < sorted[j].JerseyNumber
	})

	byPosition := make(map[Position][]Player)
	for _, p := range sorted {
		if custom, ok := positions.Lookup(p.ID); ok {
			board.Placed = append(board.Placed, PlacedPlayer{Player: p, X: custom.X, Y: custom.Y, Custom: true})
			continue
		}
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}

	for _, position := range Positions {
		slots := formation.SlotsFor(position)
		for i, p := range byPosition[position] {
			if i >= len(slots) {
				board.Substitutes = append(board.Substitutes, p)
				continue
			}
			board.Placed = append(board.Placed, PlacedPlayer{Player: p, X: slots[i].X, Y: slots[i].Y})
		}
	}

	// players with a position outside the known set have no slot
	for _, p := range sorted {
		if _, custom := positions.Lookup(p.ID); !custom && !p.Position.Valid() {
			board.Substitutes = append(board.Substitutes, p)
		}
	}

	return board
}
