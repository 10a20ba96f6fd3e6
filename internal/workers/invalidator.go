// internal/workers/invalidator.go
package workers

import (
	"context"
	"log/slog"

	"github.com/wsvendas/motostock/internal/core/ports"
)

// AsyncInvalidator hands catalog invalidation to the worker and falls back
// to invalidating in-process when the queue is unavailable.
type AsyncInvalidator struct {
	enqueuer Enqueuer
	fallback ports.CatalogInvalidator
	logger   *slog.Logger
}

var _ ports.CatalogInvalidator = (*AsyncInvalidator)(nil)

// NewAsyncInvalidator creates an invalidator. enqueuer may be nil.
func NewAsyncInvalidator(enqueuer Enqueuer, fallback ports.CatalogInvalidator, logger *slog.Logger) *AsyncInvalidator {
	return &AsyncInvalidator{
		enqueuer: enqueuer,
		fallback: fallback,
		logger:   logger.With(slog.String("component", "catalog_invalidator")),
	}
}

func (a *AsyncInvalidator) InvalidateCatalog(ctx context.Context) error {
	if a.enqueuer != nil {
		info, err := a.enqueuer.EnqueueContext(ctx, NewCatalogInvalidateTask())
		if err == nil {
			a.logger.DebugContext(ctx, "catalog invalidation queued", slog.String("task_id", info.ID))
			return nil
		}
		a.logger.WarnContext(ctx, "failed to queue catalog invalidation, invalidating inline",
			slog.Any("error", err))
	}
	return a.fallback.InvalidateCatalog(ctx)
}
