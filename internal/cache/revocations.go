package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations stores signed-out token ids in redis until they expire.
type Revocations struct {
	redis *redis.Client
}

func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{
		redis: client,
	}
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

func (r *Revocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.redis.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// MemoryRevocations is the single-process fallback used when redis is disabled.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, until := range m.revoked {
		if !now.Before(until) {
			delete(m.revoked, id)
		}
	}
	m.revoked[tokenID] = now.Add(ttl)

	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}

	return m.now().Before(until), nil
}
