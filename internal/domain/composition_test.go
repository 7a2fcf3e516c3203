package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormationsHaveElevenSlots(t *testing.T) {
	for _, f := range Formations() {
		assert.Len(t, f.Slots, 11, f.Name)
		assert.Len(t, f.SlotsFor(PositionGoalkeeper), 1, f.Name)
		for _, s := range f.Slots {
			assert.Equal(t, s.X, ClampPercent(s.X))
			assert.Equal(t, s.Y, ClampPercent(s.Y))
		}
	}
	assert.Equal(t, []string{"3-5-2", "4-3-3", "4-4-2"}, FormationNames())
}

func TestPositionFromDrop(t *testing.T) {
	pitch := Pitch{Width: 400, Height: 600}

	tests := []struct {
		name         string
		pointerX     float64
		pointerY     float64
		wantX, wantY float64
	}{
		{"inside", 200, 300, 50, 50},
		{"far left and above", -5000, -20, 10, 10},
		{"far right and below", 10000, 601, 90, 90},
		{"near edge", 20, 580, 10, 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, err := PositionFromDrop(tc.pointerX, tc.pointerY, pitch)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantX, x, 1e-9)
			assert.InDelta(t, tc.wantY, y, 1e-9)
		})
	}

	_, _, err := PositionFromDrop(1, 1, Pitch{})
	assert.ErrorIs(t, err, ErrInvalidPitch)
}

func TestPositionSetUpsertAndRemove(t *testing.T) {
	set := NewPositionSet("4-3-3")
	id := uuid.New()

	set.Upsert(id, 5, 95)
	require.Len(t, set.Positions, 1)
	assert.Equal(t, PlayerPosition{PlayerID: id, X: 10, Y: 90}, set.Positions[0])

	set.Upsert(id, 40, 60)
	require.Len(t, set.Positions, 1)
	assert.Equal(t, 40.0, set.Positions[0].X)

	assert.True(t, set.Remove(id))
	assert.False(t, set.Remove(id))
	assert.Empty(t, set.Positions)
}

func TestPositionSetJSONRoundTripAndLegacy(t *testing.T) {
	id := uuid.New()
	set := NewPositionSet("4-4-2")
	set.Upsert(id, 33.5, 71.25)

	raw, err := json.Marshal(set)
	require.NoError(t, err)

	var restored PositionSet
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, set, restored)

	legacy := `[{"playerId":"` + id.String() + `","x":12,"y":40}]`
	var upgraded PositionSet
	require.NoError(t, json.Unmarshal([]byte(legacy), &upgraded))
	assert.Equal(t, PositionSetVersion, upgraded.Version)
	require.Len(t, upgraded.Positions, 1)
	assert.Equal(t, id, upgraded.Positions[0].PlayerID)
	assert.Equal(t, 40.0, upgraded.Positions[0].Y)
}

func TestBuildBoard(t *testing.T) {
	player := func(n int, pos Position) Player {
		return Player{ID: uuid.New(), JerseyNumber: n, Position: pos, Active: true}
	}
	gk1 := player(1, PositionGoalkeeper)
	gk2 := player(16, PositionGoalkeeper)
	fw1 := player(9, PositionForward)
	fw2 := player(10, PositionForward)
	fw3 := player(11, PositionForward)
	def := player(4, PositionDefender)

	t.Run("extra players become substitutes", func(t *testing.T) {
		board := BuildBoard("4-4-2", []Player{fw3, gk2, fw1, gk1, fw2, def}, NewPositionSet("4-4-2"))

		assert.Equal(t, "4-4-2", board.Formation)
		assert.Len(t, board.Placed, 4)
		require.Len(t, board.Substitutes, 2)
		assert.Equal(t, 16, board.Substitutes[0].JerseyNumber)
		assert.Equal(t, 11, board.Substitutes[1].JerseyNumber)

		placed := map[int]PlacedPlayer{}
		for _, p := range board.Placed {
			placed[p.Player.JerseyNumber] = p
		}
		assert.Equal(t, 50.0, placed[1].X)
		assert.Equal(t, 88.0, placed[1].Y)
		assert.Equal(t, 38.0, placed[9].X)
		assert.Equal(t, 62.0, placed[10].X)
		assert.Equal(t, 15.0, placed[4].X)
	})

	t.Run("custom positions override slots", func(t *testing.T) {
		positions := NewPositionSet("4-3-3")
		positions.Upsert(fw3.ID, 70, 30)

		board := BuildBoard("4-3-3", []Player{fw1, fw2, fw3}, positions)

		assert.Empty(t, board.Substitutes)
		var custom *PlacedPlayer
		for i := range board.Placed {
			if board.Placed[i].Player.ID == fw3.ID {
				custom = &board.Placed[i]
			}
		}
		require.NotNil(t, custom)
		assert.True(t, custom.Custom)
		assert.Equal(t, 70.0, custom.X)
	})

	t.Run("unknown formation falls back", func(t *testing.T) {
		board := BuildBoard("5-5-0", nil, NewPositionSet(""))
		assert.Equal(t, DefaultFormation, board.Formation)
		assert.Empty(t, board.Placed)
	})
}
