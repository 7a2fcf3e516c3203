package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/config"
	"github.com/asclub/club-api/internal/domain"
)

func startRedis(t *testing.T) *config.RedisConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	return &config.RedisConfig{
		Enabled: true,
		Host:    "localhost",
		Port:    resource.GetPort("6379/tcp"),
	}
}

func TestRedisStores(t *testing.T) {
	conf := startRedis(t)
	ctx := context.Background()

	client, err := Open(ctx, conf, 10)
	require.NoError(t, err)
	defer client.Close()

	counts := NewReactionCounts(client, time.Minute)
	id := uuid.New()

	_, ok, err := counts.Get(ctx, domain.EntityArticle, id)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.ReactionCounts{EntityType: domain.EntityArticle, EntityID: id, Likes: 3, Dislikes: 1}
	require.NoError(t, counts.Set(ctx, want))

	got, ok, err := counts.Get(ctx, domain.EntityArticle, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, counts.Invalidate(ctx, domain.EntityArticle, id))
	_, ok, err = counts.Get(ctx, domain.EntityArticle, id)
	require.NoError(t, err)
	assert.False(t, ok)

	revocations := NewRevocations(client)
	require.NoError(t, revocations.Revoke(ctx, "token-1", time.Minute))

	revoked, err := revocations.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = revocations.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
