package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asclub/club-api/internal/domain"
)

var (
	ErrReactionCooldown    = domain.ErrReactionCooldown
	ErrInvalidEntityType   = errors.New("invalid entity type")
	ErrInvalidReactionType = errors.New("invalid reaction type")
)

type ReactionRepository interface {
	Find(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error)
	// Save must reject the write with a *domain.CooldownError when the stored
	// row is still active at now.
	Save(ctx context.Context, reaction domain.Reaction, now time.Time) (domain.Reaction, error)
	DeleteExpired(ctx context.Context, now time.Time) ([]domain.ReactionTarget, int64, error)
	Counts(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, error)
	CountsByType(ctx context.Context, entityType domain.EntityType) ([]domain.ReactionCounts, error)
}

// ReactionCountCache keeps aggregated counts per entity. A miss is reported
// with ok == false.
type ReactionCountCache interface {
	Get(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (counts domain.ReactionCounts, ok bool, err error)
	Set(ctx context.Context, counts domain.ReactionCounts) error
	Invalidate(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) error
}

type ReactionService struct {
	repo  ReactionRepository
	cache ReactionCountCache
	now   func() time.Time
}

// NewReactionService builds the service. cache may be nil.
func NewReactionService(repo ReactionRepository, cache ReactionCountCache) *ReactionService {
	return &ReactionService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// React records a like or dislike from voterID. A voter holding an unexpired
// reaction on the entity gets a *domain.CooldownError and nothing is written.
func (s *ReactionService) React(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID, reactionType domain.ReactionType) (domain.Reaction, domain.ReactionCounts, error) {
	if !entityType.Valid() {
		return domain.Reaction{}, domain.ReactionCounts{}, ErrInvalidEntityType
	}
	if !reactionType.Valid() {
		return domain.Reaction{}, domain.ReactionCounts{}, ErrInvalidReactionType
	}
	if voterID == "" {
		voterID = domain.UnknownVoter
	}

	existing, err := s.repo.Find(ctx, voterID, entityType, entityID)
	if err != nil {
		return domain.Reaction{}, domain.ReactionCounts{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	now := s.now()
	next, err := domain.DecideReaction(existing, voterID, entityType, entityID, reactionType, now)
	if err != nil {
		return domain.Reaction{}, domain.ReactionCounts{}, err
	}

	// a concurrent vote may have landed since Find
	saved, err := s.repo.Save(ctx, next, now)
	if err != nil {
		var cooldown *domain.CooldownError
		if errors.As(err, &cooldown) {
			return domain.Reaction{}, domain.ReactionCounts{}, cooldown
		}

		return domain.Reaction{}, domain.ReactionCounts{}, fmt.Errorf("s.repo.Save -> %w", err)
	}

	s.invalidate(ctx, entityType, entityID)

	counts, err := s.Counts(ctx, entityType, entityID)
	if err != nil {
		return domain.Reaction{}, domain.ReactionCounts{}, err
	}

	return saved, counts, nil
}

// Counts reads the aggregated counts, cache first.
func (s *ReactionService) Counts(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, error) {
	if !entityType.Valid() {
		return domain.ReactionCounts{}, ErrInvalidEntityType
	}

	if s.cache != nil {
		counts, ok, err := s.cache.Get(ctx, entityType, entityID)
		if err != nil {
			zap.L().Warn("reaction count cache read failed", zap.Error(err))
		} else if ok {
			return counts, nil
		}
	}

	counts, err := s.repo.Counts(ctx, entityType, entityID)
	if err != nil {
		return domain.ReactionCounts{}, fmt.Errorf("s.repo.Counts -> %w", err)
	}
	counts.EntityType = entityType
	counts.EntityID = entityID

	if s.cache != nil {
		if err := s.cache.Set(ctx, counts); err != nil {
			zap.L().Warn("reaction count cache write failed", zap.Error(err))
		}
	}

	return counts, nil
}

func (s *ReactionService) CountsByType(ctx context.Context, entityType domain.EntityType) ([]domain.ReactionCounts, error) {
	if !entityType.Valid() {
		return nil, ErrInvalidEntityType
	}

	counts, err := s.repo.CountsByType(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CountsByType -> %w", err)
	}

	return counts, nil
}

// Mine returns the voter's unexpired reaction on the entity, or nil.
func (s *ReactionService) Mine(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error) {
	if !entityType.Valid() {
		return nil, ErrInvalidEntityType
	}

	reaction, err := s.repo.Find(ctx, voterID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}
	if reaction == nil || reaction.Expired(s.now()) {
		return nil, nil
	}

	return reaction, nil
}

// Prune deletes every expired reaction and returns how many were removed.
// Cached counts of the affected entities are dropped.
func (s *ReactionService) Prune(ctx context.Context) (int64, error) {
	targets, n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteExpired -> %w", err)
	}

	for _, target := range targets {
		s.invalidate(ctx, target.EntityType, target.EntityID)
	}

	return n, nil
}

func (s *ReactionService) invalidate(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, entityType, entityID); err != nil {
		zap.L().Warn("reaction count cache invalidation failed", zap.Error(err))
	}
}
