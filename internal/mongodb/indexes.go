package mongodb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// IndexBuilder creates the indexes the repositories rely on.
type IndexBuilder interface {
	EnsureIndexes(ctx context.Context) error
}

// IndexGate holds back member and staff writes until the unique email
// indexes exist. Without them MongoDB would accept duplicate emails.
// A nil *IndexGate lets every write through.
type IndexGate struct {
	builder IndexBuilder
	logger  *zap.Logger

	mu    sync.Mutex
	ready atomic.Bool
}

func NewIndexGate(builder IndexBuilder, logger *zap.Logger) *IndexGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexGate{builder: builder, logger: logger}
}

func (g *IndexGate) Ready() bool {
	return g == nil || g.ready.Load()
}

// Ensure builds the indexes unless an earlier call already succeeded.
func (g *IndexGate) Ensure(ctx context.Context) error {
	if g.Ready() {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ready.Load() {
		return nil
	}

	if err := g.builder.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("unique indexes are not in place: %w", err)
	}
	g.ready.Store(true)
	return nil
}

// Run retries Ensure every interval until it succeeds or ctx is cancelled.
func (g *IndexGate) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !g.Ready() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		attemptCtx, cancel := context.WithTimeout(ctx, interval)
		err := g.Ensure(attemptCtx)
		cancel()
		if err != nil {
			g.logger.Warn("MongoDB indexes not created yet, retrying",
				zap.Duration("interval", interval),
				zap.Error(err),
			)
			continue
		}
		g.logger.Info("MongoDB indexes created")
	}
}

// RepositoryOption configures a MongoDB repository.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	indexes *IndexGate
}

// WithIndexGate makes create and update wait for the unique indexes.
func WithIndexGate(g *IndexGate) RepositoryOption {
	return func(o *repositoryOptions) {
		o.indexes = g
	}
}

func applyOptions(opts []RepositoryOption) repositoryOptions {
	var o repositoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
