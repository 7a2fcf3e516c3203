package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asclub/club-api/internal/domain"
)

type MatchRepository interface {
	CRUDRepository[domain.Match]
	List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, error)
	Next(ctx context.Context, now time.Time) (domain.Match, error)
	Results(ctx context.Context, limit int) ([]domain.Match, error)
}

// MatchBroadcaster receives every match written by an admin.
type MatchBroadcaster interface {
	Broadcast(match domain.Match)
}

type MatchService struct {
	crudService[domain.Match]
	repo        MatchRepository
	broadcaster MatchBroadcaster
	now         func() time.Time
	retries     uint64
}

func NewMatchService(repo MatchRepository, broadcaster MatchBroadcaster) *MatchService {
	return &MatchService{
		crudService: crudService[domain.Match]{repo: repo},
		repo:        repo,
		broadcaster: broadcaster,
		now:         time.Now,
		retries:     2,
	}
}

func (s *MatchService) List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, error) {
	matches, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return matches, nil
}

// Next returns the earliest upcoming match. Transient read failures are
// retried; a missing match is returned as ErrNotFound right away.
func (s *MatchService) Next(ctx context.Context) (domain.Match, error) {
	var match domain.Match

	operation := func() error {
		var err error
		match, err = s.repo.Next(ctx, s.now())
		if errors.Is(err, ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return domain.Match{}, fmt.Errorf("s.repo.Next -> %w", err)
	}

	return match, nil
}

func (s *MatchService) Results(ctx context.Context, limit int) ([]domain.Match, error) {
	matches, err := s.repo.Results(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Results -> %w", err)
	}

	return matches, nil
}

func (s *MatchService) Create(ctx context.Context, match domain.Match) (domain.Match, error) {
	created, err := s.crudService.Create(ctx, match)
	if err != nil {
		return domain.Match{}, err
	}
	s.broadcast(created)

	return created, nil
}

func (s *MatchService) Update(ctx context.Context, id uuid.UUID, match domain.Match) (domain.Match, error) {
	updated, err := s.crudService.Update(ctx, id, match)
	if err != nil {
		return domain.Match{}, err
	}
	s.broadcast(updated)

	return updated, nil
}

func (s *MatchService) broadcast(match domain.Match) {
	if s.broadcaster == nil {
		return
	}
	zap.L().Debug("broadcasting match update", zap.String("match_id", match.ID.String()), zap.String("status", string(match.Status)))
	s.broadcaster.Broadcast(match)
}
