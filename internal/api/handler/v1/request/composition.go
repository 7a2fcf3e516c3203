package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/service"
)

var (
	errPartialPercent = errors.New("x and y must be given together")
	errPartialPointer = errors.New("pointer_x, pointer_y, pitch_width and pitch_height must be given together")
	errNoPosition     = errors.New("either x and y or pointer_x, pointer_y, pitch_width and pitch_height are required")
)

func formationNames() []interface{} {
	return oneOf(domain.FormationNames())
}

type CompositionRequest struct {
	Title           string              `json:"title"`
	Formation       string              `json:"formation"`
	PlayerPositions *domain.PositionSet `json:"player_positions"`
}

func (req *CompositionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Formation, validation.In(formationNames()...)),
	)
}

// ToDomain leaves the position list nil when the request carries none, so an
// update keeps the stored positions.
func (req *CompositionRequest) ToDomain() domain.Composition {
	composition := domain.Composition{
		Title:     req.Title,
		Formation: req.Formation,
	}
	if req.PlayerPositions != nil {
		composition.Positions = *req.PlayerPositions
	}

	return composition
}

type MoveRequest struct {
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	PointerX    *float64 `json:"pointer_x"`
	PointerY    *float64 `json:"pointer_y"`
	PitchWidth  float64  `json:"pitch_width"`
	PitchHeight float64  `json:"pitch_height"`
}

func (req *MoveRequest) Validate() error {
	percent := req.X != nil || req.Y != nil
	pointer := req.PointerX != nil || req.PointerY != nil

	switch {
	case pointer:
		if req.PointerX == nil || req.PointerY == nil {
			return errPartialPointer
		}
		return validation.ValidateStruct(
			req,
			validation.Field(&req.PitchWidth, validation.Required, validation.Min(1.0)),
			validation.Field(&req.PitchHeight, validation.Required, validation.Min(1.0)),
		)
	case percent:
		if req.X == nil || req.Y == nil {
			return errPartialPercent
		}
		return nil
	default:
		return errNoPosition
	}
}

func (req *MoveRequest) ToMove() service.Move {
	move := service.Move{
		Pitch: domain.Pitch{Width: req.PitchWidth, Height: req.PitchHeight},
	}
	if req.PointerX != nil {
		move.PointerX = req.PointerX
		move.PointerY = req.PointerY
		return move
	}
	move.X = req.X
	move.Y = req.Y

	return move
}
