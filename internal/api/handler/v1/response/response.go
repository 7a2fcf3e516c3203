package response

import (
	"time"

	"github.com/asclub/club-api/internal/domain"
)

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type VoterTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReactionsResponse struct {
	Counts     domain.ReactionCounts `json:"counts"`
	MyReaction *domain.Reaction      `json:"my_reaction"`
	CanReact   bool                  `json:"can_react"`
}

type CompositionBoardResponse struct {
	Composition domain.Composition `json:"composition"`
	Board       domain.Board       `json:"board"`
}

type MovePlayerResponse struct {
	Composition domain.Composition    `json:"composition"`
	Position    domain.PlayerPosition `json:"position"`
}

type FormationsResponse struct {
	Formations []domain.Formation `json:"formations"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
