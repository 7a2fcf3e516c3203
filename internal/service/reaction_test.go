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

type fakeReactionRepo struct {
	rows map[string]domain.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{rows: make(map[string]domain.Reaction)}
}

func reactionKey(voterID string, entityType domain.EntityType, entityID uuid.UUID) string {
	return voterID + "|" + string(entityType) + "|" + entityID.String()
}

func (r *fakeReactionRepo) Find(_ context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error) {
	row, ok := r.rows[reactionKey(voterID, entityType, entityID)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeReactionRepo) Save(_ context.Context, reaction domain.Reaction, now time.Time) (domain.Reaction, error) {
	key := reactionKey(reaction.VoterID, reaction.EntityType, reaction.EntityID)
	if stored, ok := r.rows[key]; ok && !stored.Expired(now) {
		return domain.Reaction{}, &domain.CooldownError{ExpiresAt: stored.ExpiresAt, Remaining: stored.ExpiresAt.Sub(now)}
	}
	if reaction.ID == uuid.Nil {
		reaction.ID = uuid.New()
	}
	r.rows[key] = reaction
	return reaction, nil
}

func (r *fakeReactionRepo) DeleteExpired(_ context.Context, now time.Time) ([]domain.ReactionTarget, int64, error) {
	var (
		targets []domain.ReactionTarget
		n       int64
	)
	seen := make(map[domain.ReactionTarget]bool)
	for k, row := range r.rows {
		if row.Expired(now) {
			target := domain.ReactionTarget{EntityType: row.EntityType, EntityID: row.EntityID}
			if !seen[target] {
				seen[target] = true
				targets = append(targets, target)
			}
			delete(r.rows, k)
			n++
		}
	}
	return targets, n, nil
}

func (r *fakeReactionRepo) Counts(_ context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, error) {
	counts := domain.ReactionCounts{EntityType: entityType, EntityID: entityID}
	for _, row := range r.rows {
		if row.EntityType == entityType && row.EntityID == entityID {
			counts.Apply(nil, row.ReactionType)
		}
	}
	return counts, nil
}

func (r *fakeReactionRepo) CountsByType(ctx context.Context, entityType domain.EntityType) ([]domain.ReactionCounts, error) {
	seen := make(map[uuid.UUID]bool)
	var out []domain.ReactionCounts
	for _, row := range r.rows {
		if row.EntityType != entityType || seen[row.EntityID] {
			continue
		}
		seen[row.EntityID] = true
		counts, _ := r.Counts(ctx, entityType, row.EntityID)
		out = append(out, counts)
	}
	return out, nil
}

type fakeCountCache struct {
	entries     map[string]domain.ReactionCounts
	invalidated int
	failReads   bool
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{entries: make(map[string]domain.ReactionCounts)}
}

func (c *fakeCountCache) Get(_ context.Context, entityType domain.EntityType, entityID uuid.UUID) (domain.ReactionCounts, bool, error) {
	if c.failReads {
		return domain.ReactionCounts{}, false, errors.New("cache down")
	}
	counts, ok := c.entries[reactionKey("", entityType, entityID)]
	return counts, ok, nil
}

func (c *fakeCountCache) Set(_ context.Context, counts domain.ReactionCounts) error {
	c.entries[reactionKey("", counts.EntityType, counts.EntityID)] = counts
	return nil
}

func (c *fakeCountCache) Invalidate(_ context.Context, entityType domain.EntityType, entityID uuid.UUID) error {
	c.invalidated++
	delete(c.entries, reactionKey("", entityType, entityID))
	return nil
}

func newReactionServiceAt(repo ReactionRepository, cache ReactionCountCache, now *time.Time) *ReactionService {
	s := NewReactionService(repo, cache)
	s.now = func() time.Time { return *now }
	return s
}

func TestReactionService_React(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeReactionRepo()
	s := newReactionServiceAt(repo, nil, &now)
	article := uuid.New()

	reaction, counts, err := s.React(ctx, "voter:a", domain.EntityArticle, article, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, now.Add(domain.ReactionTTL), reaction.ExpiresAt)
	assert.Equal(t, int64(1), counts.Likes)

	now = now.Add(time.Hour)
	_, _, err = s.React(ctx, "voter:a", domain.EntityArticle, article, domain.ReactionDislike)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReactionCooldown)
	var cooldown *domain.CooldownError
	require.True(t, errors.As(err, &cooldown))
	assert.Equal(t, 23*time.Hour, cooldown.Remaining)

	_, counts, err = s.React(ctx, "voter:b", domain.EntityArticle, article, domain.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
	assert.Equal(t, int64(1), counts.Dislikes)

	// the first voter's window is over: the row is replaced, not duplicated
	now = now.Add(domain.ReactionTTL)
	again, counts, err := s.React(ctx, "voter:a", domain.EntityArticle, article, domain.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, reaction.ID, again.ID)
	assert.Equal(t, int64(0), counts.Likes)
	assert.Equal(t, int64(2), counts.Dislikes)
}

func TestReactionService_ReactValidates(t *testing.T) {
	ctx := context.Background()
	s := NewReactionService(newFakeReactionRepo(), nil)

	_, _, err := s.React(ctx, "voter:a", "stadium", uuid.New(), domain.ReactionLike)
	assert.ErrorIs(t, err, ErrInvalidEntityType)

	_, _, err = s.React(ctx, "voter:a", domain.EntityPlayer, uuid.New(), "love")
	assert.ErrorIs(t, err, ErrInvalidReactionType)
}

func TestReactionService_ReactWithoutVoter(t *testing.T) {
	repo := newFakeReactionRepo()
	s := NewReactionService(repo, nil)
	player := uuid.New()

	_, _, err := s.React(context.Background(), "", domain.EntityPlayer, player, domain.ReactionLike)
	require.NoError(t, err)

	mine, err := s.Mine(context.Background(), domain.UnknownVoter, domain.EntityPlayer, player)
	require.NoError(t, err)
	assert.NotNil(t, mine)
}

func TestReactionService_CountsUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReactionRepo()
	cache := newFakeCountCache()
	s := NewReactionService(repo, cache)
	match := uuid.New()

	_, _, err := s.React(ctx, "voter:a", domain.EntityMatch, match, domain.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	// React refilled the cache; a stale entry wins until the next vote
	cache.entries[reactionKey("", domain.EntityMatch, match)] = domain.ReactionCounts{EntityType: domain.EntityMatch, EntityID: match, Likes: 42}
	counts, err := s.Counts(ctx, domain.EntityMatch, match)
	require.NoError(t, err)
	assert.Equal(t, int64(42), counts.Likes)

	_, _, err = s.React(ctx, "voter:b", domain.EntityMatch, match, domain.ReactionLike)
	require.NoError(t, err)
	counts, err = s.Counts(ctx, domain.EntityMatch, match)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Likes)

	cache.failReads = true
	counts, err = s.Counts(ctx, domain.EntityMatch, match)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Likes)
}

func TestReactionService_MineAndPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeReactionRepo()
	s := newReactionServiceAt(repo, nil, &now)
	staff := uuid.New()

	mine, err := s.Mine(ctx, "voter:a", domain.EntityStaff, staff)
	require.NoError(t, err)
	assert.Nil(t, mine)

	_, _, err = s.React(ctx, "voter:a", domain.EntityStaff, staff, domain.ReactionLike)
	require.NoError(t, err)

	mine, err = s.Mine(ctx, "voter:a", domain.EntityStaff, staff)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, domain.ReactionLike, mine.ReactionType)

	now = now.Add(domain.ReactionTTL)
	mine, err = s.Mine(ctx, "voter:a", domain.EntityStaff, staff)
	require.NoError(t, err)
	assert.Nil(t, mine)

	pruned, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
	assert.Empty(t, repo.rows)
}

func TestReactionService_PruneDropsCachedCounts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeReactionRepo()
	cache := newFakeCountCache()
	s := newReactionServiceAt(repo, cache, &now)
	player, article := uuid.New(), uuid.New()

	for _, voter := range []string{"voter:a", "voter:b"} {
		_, _, err := s.React(ctx, voter, domain.EntityPlayer, player, domain.ReactionLike)
		require.NoError(t, err)
	}
	now = now.Add(time.Hour)
	_, _, err := s.React(ctx, "voter:a", domain.EntityArticle, article, domain.ReactionDislike)
	require.NoError(t, err)

	counts, err := s.Counts(ctx, domain.EntityPlayer, player)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Likes)

	// only the player votes have expired
	now = now.Add(domain.ReactionTTL - time.Minute)
	invalidated := cache.invalidated
	pruned, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)
	assert.Equal(t, invalidated+1, cache.invalidated)

	counts, err = s.Counts(ctx, domain.EntityPlayer, player)
	require.NoError(t, err)
	assert.Zero(t, counts.Likes)

	counts, err = s.Counts(ctx, domain.EntityArticle, article)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Dislikes)
}

func TestReactionService_SaveRejectsVoteThatLandedConcurrently(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &racingReactionRepo{fakeReactionRepo: newFakeReactionRepo()}
	s := newReactionServiceAt(repo, newFakeCountCache(), &now)
	match := uuid.New()

	_, _, err := s.React(ctx, "voter:a", domain.EntityMatch, match, domain.ReactionDislike)
	var cooldown *domain.CooldownError
	require.True(t, errors.As(err, &cooldown))
	assert.Equal(t, domain.ReactionTTL, cooldown.Remaining)

	counts, err := s.Counts(ctx, domain.EntityMatch, match)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
	assert.Zero(t, counts.Dislikes)
}

// racingReactionRepo stores a competing vote between Find and Save.
type racingReactionRepo struct {
	*fakeReactionRepo
}

func (r *racingReactionRepo) Find(ctx context.Context, voterID string, entityType domain.EntityType, entityID uuid.UUID) (*domain.Reaction, error) {
	found, err := r.fakeReactionRepo.Find(ctx, voterID, entityType, entityID)
	r.rows[reactionKey(voterID, entityType, entityID)] = domain.Reaction{
		ID:           uuid.New(),
		VoterID:      voterID,
		EntityType:   entityType,
		EntityID:     entityID,
		ReactionType: domain.ReactionLike,
		ExpiresAt:    time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}
	return found, err
}
