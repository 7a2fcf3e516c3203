package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
)

type ReactionRepository struct {
	dao *dao.ReactionDAO
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{
		dao: dao.NewReactionDAO(db),
	}
}

// Find returns the voter's reaction on the entity, or nil when there is none.
func (r *ReactionRepository) Find(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error) {
	row, err := r.dao.Find(ctx, voterID, string(entityType), entityID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	reaction := reactionDaoToDomain(row)
	return &reaction, nil
}

// Save writes the reaction unless the voter's stored row is still active at
// now, in which case a *domain.CooldownError built from that row is returned.
func (r *ReactionRepository) Save(ctx context.Context, reaction domain.Reaction, now time.Time) (domain.Reaction, error) {
	row, err := r.dao.Upsert(ctx, reactionDomainToDao(reaction), now)
	if err != nil {
		if errors.Is(err, dao.ErrReactionActive) {
			return domain.Reaction{}, &domain.CooldownError{
				ExpiresAt: row.ExpiresAt,
				Remaining: row.ExpiresAt.Sub(now),
			}
		}

		return domain.Reaction{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return reactionDaoToDomain(row), nil
}

// DeleteExpired removes reactions expired at now and returns the entities
// they belonged to.
func (r *ReactionRepository) DeleteExpired(ctx context.Context, now time.Time) ([]domain.ReactionTarget, int64, error) {
	rows, n, err := r.dao.DeleteExpired(ctx, now)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.DeleteExpired -> %w", err)
	}

	targets := make([]domain.ReactionTarget, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, domain.ReactionTarget{
			EntityType: domain.EntityType(row.EntityType),
			EntityID:   row.EntityID,
		})
	}

	return targets, n, nil
}

func (r *ReactionRepository) Counts(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, error) {
	row, err := r.dao.Counts(ctx, string(entityType), entityID)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("r.dao.Counts -> %w", err)
	}

	return countsDaoToDomain(row), nil
}

func (r *ReactionRepository) CountsByType(ctx context.Context, entityType domain.EntityType) ([]domain.ReactionCounts, error) {
	rows, err := r.dao.CountsByType(ctx, string(entityType))
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountsByType -> %w", err)
	}

	counts := make([]domain.ReactionCounts, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, countsDaoToDomain(row))
	}

	return counts, nil
}

func countsDaoToDomain(c dao.ReactionCount) domain.ReactionCounts {
	return domain.ReactionCounts{
		EntityType: domain.EntityType(c.EntityType),
		EntityID:   c.EntityID,
		Likes:      c.Likes,
		Dislikes:   c.Dislikes,
	}
}

func reactionDaoToDomain(r dao.UserReaction) domain.Reaction {
	return domain.Reaction{
		ID:           r.ID,
		VoterID:      r.VoterID,
		EntityType:   domain.EntityType(r.EntityType),
		EntityID:     r.EntityID,
		ReactionType: domain.ReactionType(r.ReactionType),
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func reactionDomainToDao(r domain.Reaction) dao.UserReaction {
	return dao.UserReaction{
		Base:         dao.Base{ID: r.ID, CreatedAt: r.CreatedAt},
		VoterID:      r.VoterID,
		EntityType:   string(r.EntityType),
		EntityID:     r.EntityID,
		ReactionType: string(r.ReactionType),
		ExpiresAt:    r.ExpiresAt,
	}
}
