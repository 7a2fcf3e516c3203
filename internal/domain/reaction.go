package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReactionTTL is how long a vote blocks the same voter from voting again on the same entity.
const ReactionTTL = 24 * time.Hour

// UnknownVoter is used when no identity can be resolved for the caller.
const UnknownVoter = "unknown"

var ErrReactionCooldown = errors.New("reaction already registered")

type EntityType string

const (
	EntityArticle EntityType = "article"
	EntityPlayer  EntityType = "player"
	EntityStaff   EntityType = "staff"
	EntityMatch   EntityType = "match"
)

var EntityTypes = []EntityType{EntityArticle, EntityPlayer, EntityStaff, EntityMatch}

func (t EntityType) Valid() bool {
	for _, v := range EntityTypes {
		if v == t {
			return true
		}
	}
	return false
}

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

type Reaction struct {
	ID           uuid.UUID    `json:"id"`
	VoterID      string       `json:"-"`
	EntityType   EntityType   `json:"entity_type"`
	EntityID     uuid.UUID    `json:"entity_id"`
	ReactionType ReactionType `json:"reaction_type"`
	ExpiresAt    time.Time    `json:"expires_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Expired reports whether the vote no longer blocks a new one at now.
func (r Reaction) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type ReactionCounts struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Likes      int64      `json:"likes"`
	Dislikes   int64      `json:"dislikes"`
}

// Apply moves one vote from previous (if any) to next.
func (c *ReactionCounts) Apply(previous *ReactionType, next ReactionType) {
	if previous != nil {
		switch *previous {
		case ReactionLike:
			if c.Likes > 0 {
				c.Likes--
			}
		case ReactionDislike:
			if c.Dislikes > 0 {
				c.Dislikes--
			}
		}
	}
	switch next {
	case ReactionLike:
		c.Likes++
	case ReactionDislike:
		c.Dislikes++
	}
}

// ReactionTarget identifies an entity that can receive reactions.
type ReactionTarget struct {
	EntityType EntityType
	EntityID   uuid.UUID
}

// CooldownError is returned when the voter still holds an unexpired reaction.
type CooldownError struct {
	ExpiresAt time.Time
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s, you can vote again in %s", ErrReactionCooldown, e.Remaining.Round(time.Minute))
}

func (e *CooldownError) Unwrap() error {
	return ErrReactionCooldown
}

// DecideReaction applies the vote state machine. With no existing row or an
// expired one the returned reaction is the row to upsert; an unexpired row
// rejects the vote with a *CooldownError.
func DecideReaction(existing *Reaction, voterID string, entityType EntityType, entityID uuid.UUID, reactionType ReactionType, now time.Time) (Reaction, error) {
	if existing != nil && !existing.Expired(now) {
		return Reaction{}, &CooldownError{
			ExpiresAt: existing.ExpiresAt,
			Remaining: existing.ExpiresAt.Sub(now),
		}
	}

	next := Reaction{
		VoterID:      voterID,
		EntityType:   entityType,
		EntityID:     entityID,
		ReactionType: reactionType,
		ExpiresAt:    now.Add(ReactionTTL),
	}
	if existing != nil {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
	}

	return next, nil
}
