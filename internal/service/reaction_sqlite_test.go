package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/db"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository"
	"github.com/asclub/club-api/internal/repository/dao"
)

func TestReactionService_ConcurrentVotesFromOneVoter(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(conn))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	s := NewReactionService(repository.NewReactionRepository(conn), nil)
	article := uuid.New()

	const voters = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		accepted  int
		cooldowns int
		failures  []error
	)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := domain.ReactionLike
			if i%2 == 1 {
				kind = domain.ReactionDislike
			}
			_, _, err := s.React(ctx, "ip:203.0.113.7", domain.EntityArticle, article, kind)

			mu.Lock()
			defer mu.Unlock()
			var cooldown *domain.CooldownError
			switch {
			case err == nil:
				accepted++
			case errors.As(err, &cooldown):
				cooldowns++
			default:
				failures = append(failures, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, failures)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, voters-1, cooldowns)

	counts, err := s.Counts(ctx, domain.EntityArticle, article)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes+counts.Dislikes)
}
