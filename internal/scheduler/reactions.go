package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ReactionPruner interface {
	Prune(ctx context.Context) (int64, error)
}

// ReactionCleanup periodically deletes expired reactions.
type ReactionCleanup struct {
	pruner   ReactionPruner
	interval time.Duration
	logger   *zap.Logger
}

func NewReactionCleanup(pruner ReactionPruner, interval time.Duration) *ReactionCleanup {
	if interval <= 0 {
		interval = time.Hour
	}

	return &ReactionCleanup{
		pruner:   pruner,
		interval: interval,
		logger:   zap.L().Named("reaction-cleanup"),
	}
}

// Run prunes once right away, then on every tick until ctx is cancelled.
func (c *ReactionCleanup) Run(ctx context.Context) {
	c.logger.Info("starting", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.prune(ctx)
	for {
		select {
		case <-ticker.C:
			c.prune(ctx)
		case <-ctx.Done():
			c.logger.Info("stopped")
			return
		}
	}
}

func (c *ReactionCleanup) prune(ctx context.Context) {
	deleted, err := c.pruner.Prune(ctx)
	if err != nil {
		c.logger.Error("failed to prune expired reactions", zap.Error(err))
		return
	}
	if deleted > 0 {
		c.logger.Info("pruned expired reactions", zap.Int64("deleted", deleted))
	}
}
