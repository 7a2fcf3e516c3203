package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/domain"
)

type fakeMatchRepo struct {
	*memRepo[domain.Match]
	nextErrs  []error
	nextCalls int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{memRepo: newMemRepo(
		func(m domain.Match) uuid.UUID { return m.ID },
		func(m *domain.Match, id uuid.UUID) { m.ID = id },
	)}
}

func (r *fakeMatchRepo) List(context.Context, domain.MatchFilter) ([]domain.Match, error) {
	return r.all(), nil
}

func (r *fakeMatchRepo) Next(_ context.Context, now time.Time) (domain.Match, error) {
	r.nextCalls++
	if len(r.nextErrs) > 0 {
		err := r.nextErrs[0]
		r.nextErrs = r.nextErrs[1:]
		return domain.Match{}, err
	}

	var next domain.Match
	found := false
	for _, m := range r.all() {
		if m.Status != domain.MatchUpcoming || m.MatchDate.Before(now) {
			continue
		}
		if !found || m.MatchDate.Before(next.MatchDate) {
			next, found = m, true
		}
	}
	if !found {
		return domain.Match{}, ErrNotFound
	}
	return next, nil
}

func (r *fakeMatchRepo) Results(context.Context, int) ([]domain.Match, error) {
	return nil, nil
}

type recordingBroadcaster struct {
	matches []domain.Match
}

func (b *recordingBroadcaster) Broadcast(match domain.Match) {
	b.matches = append(b.matches, match)
}

func TestMatchService_Next(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	repo := newFakeMatchRepo()
	s := NewMatchService(repo, nil)
	s.now = func() time.Time { return now }

	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, repo.nextCalls, "a missing match is not retried")

	for _, m := range []domain.Match{
		{OpponentTeam: "Past", MatchDate: now.Add(-time.Hour), Status: domain.MatchUpcoming},
		{OpponentTeam: "Later", MatchDate: now.Add(72 * time.Hour), Status: domain.MatchUpcoming},
		{OpponentTeam: "Soon", MatchDate: now.Add(24 * time.Hour), Status: domain.MatchUpcoming},
		{OpponentTeam: "Postponed", MatchDate: now.Add(2 * time.Hour), Status: domain.MatchPostponed},
	} {
		_, err := repo.Create(ctx, m)
		require.NoError(t, err)
	}

	next, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Soon", next.OpponentTeam)
}

func TestMatchService_NextRetriesTransientErrors(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMatchRepo()
	s := NewMatchService(repo, nil)

	_, err := repo.Create(ctx, domain.Match{OpponentTeam: "Soon", MatchDate: time.Now().Add(time.Hour), Status: domain.MatchUpcoming})
	require.NoError(t, err)

	repo.nextErrs = []error{errors.New("connection reset")}
	next, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Soon", next.OpponentTeam)
	assert.Equal(t, 2, repo.nextCalls)
}

func TestMatchService_BroadcastsChanges(t *testing.T) {
	ctx := context.Background()
	broadcaster := &recordingBroadcaster{}
	s := NewMatchService(newFakeMatchRepo(), broadcaster)

	created, err := s.Create(ctx, domain.Match{OpponentTeam: "FC Rival", Status: domain.MatchUpcoming})
	require.NoError(t, err)

	home, away := 2, 1
	created.Status = domain.MatchFinished
	created.HomeScore, created.AwayScore = &home, &away
	_, err = s.Update(ctx, created.ID, created)
	require.NoError(t, err)

	_, err = s.Update(ctx, uuid.New(), created)
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, broadcaster.matches, 2)
	assert.Equal(t, domain.MatchFinished, broadcaster.matches[1].Status)
}
