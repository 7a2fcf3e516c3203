package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	calls atomic.Int64
	err   error
}

func (p *countingPruner) Prune(context.Context) (int64, error) {
	p.calls.Add(1)
	return 3, p.err
}

func TestReactionCleanup_Run(t *testing.T) {
	pruner := &countingPruner{}
	cleanup := NewReactionCleanup(pruner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleanup.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pruner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestReactionCleanup_KeepsRunningOnError(t *testing.T) {
	pruner := &countingPruner{err: errors.New("db down")}
	cleanup := NewReactionCleanup(pruner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanup.Run(ctx)

	assert.Eventually(t, func() bool { return pruner.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestNewReactionCleanup_DefaultInterval(t *testing.T) {
	cleanup := NewReactionCleanup(&countingPruner{}, 0)

	assert.Equal(t, time.Hour, cleanup.interval)
}
