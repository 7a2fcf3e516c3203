package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPlayerRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     PlayerRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  PlayerRequest{Name: "Karim", JerseyNumber: 9, Position: "attaquant", Age: ptr(24)},
		},
		{
			name:    "missing name",
			req:     PlayerRequest{JerseyNumber: 9, Position: "attaquant"},
			wantErr: true,
		},
		{
			name:    "unknown position",
			req:     PlayerRequest{Name: "Karim", JerseyNumber: 9, Position: "libero"},
			wantErr: true,
		},
		{
			name:    "jersey out of range",
			req:     PlayerRequest{Name: "Karim", JerseyNumber: 100, Position: "milieu"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPlayerRequestDefaultsToActive(t *testing.T) {
	req := PlayerRequest{Name: "Karim", JerseyNumber: 9, Position: "attaquant"}
	assert.True(t, req.ToDomain().Active)

	req.Active = ptr(false)
	assert.False(t, req.ToDomain().Active)
}

func TestCompetitionRequestDates(t *testing.T) {
	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	req := CompetitionRequest{Name: "Régional 1", Type: "championnat", Season: "2024-2025", StartDate: &start, EndDate: &end}
	assert.ErrorIs(t, req.Validate(), errEndBeforeStart)

	end = start.AddDate(0, 10, 0)
	assert.NoError(t, req.Validate())
}

func TestDonationRequestValidate(t *testing.T) {
	req := DonationRequest{Amount: 20, PaymentMethod: "card", DonorName: "Jeanne"}
	assert.NoError(t, req.Validate())

	req.DonorName = ""
	assert.ErrorIs(t, req.Validate(), errDonorNameRequired)

	req.IsAnonymous = true
	assert.NoError(t, req.Validate())

	req.PaymentMethod = "bitcoin"
	assert.Error(t, req.Validate())

	req = DonationRequest{Amount: 0, PaymentMethod: "cash", IsAnonymous: true}
	assert.Error(t, req.Validate())
}

func TestMoveRequestValidate(t *testing.T) {
	assert.ErrorIs(t, (&MoveRequest{}).Validate(), errNoPosition)
	assert.ErrorIs(t, (&MoveRequest{X: ptr(20.0)}).Validate(), errPartialPercent)
	assert.ErrorIs(t, (&MoveRequest{PointerX: ptr(20.0)}).Validate(), errPartialPointer)
	assert.Error(t, (&MoveRequest{PointerX: ptr(20.0), PointerY: ptr(30.0)}).Validate())

	req := MoveRequest{PointerX: ptr(200.0), PointerY: ptr(50.0), PitchWidth: 400, PitchHeight: 600}
	require.NoError(t, req.Validate())
	move := req.ToMove()
	assert.Nil(t, move.X)
	assert.Equal(t, 200.0, *move.PointerX)

	req = MoveRequest{X: ptr(95.0), Y: ptr(5.0)}
	require.NoError(t, req.Validate())
	move = req.ToMove()
	assert.Equal(t, 95.0, *move.X)
	assert.Nil(t, move.PointerX)
}

func TestCompositionRequestFormation(t *testing.T) {
	req := CompositionRequest{Title: "Derby", Formation: "4-3-3"}
	assert.NoError(t, req.Validate())
	assert.Nil(t, req.ToDomain().Positions.Positions)

	req.Formation = "5-5-0"
	assert.Error(t, req.Validate())

	req.Formation = ""
	assert.NoError(t, req.Validate())
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Stade-2024-club"))
	assert.ErrorIs(t, ValidatePassword("short1!"), errInvalidPassword)
	assert.ErrorIs(t, ValidatePassword("nodigitshere!"), errInvalidPassword)
	assert.ErrorIs(t, ValidatePassword("nosymbols123"), errInvalidPassword)

	req := ChangePasswordRequest{CurrentPassword: "old", NewPassword: "Stade-2024-club", ConfirmPassword: "Stade-2024-clu"}
	assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
}
