// internal/workers/catalog_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// CatalogMaintainer is implemented by the catalog service
type CatalogMaintainer interface {
	InvalidateCatalog(ctx context.Context) error
	Warm(ctx context.Context) error
}

// CatalogProcessor keeps the public catalog cache fresh
type CatalogProcessor struct {
	catalog CatalogMaintainer
	logger  *slog.Logger
}

// NewCatalogProcessor creates a new catalog processor
func NewCatalogProcessor(catalog CatalogMaintainer, logger *slog.Logger) *CatalogProcessor {
	return &CatalogProcessor{
		catalog: catalog,
		logger:  logger.With(slog.String("processor", "catalog")),
	}
}

// Invalidate handles TypeCatalogInvalidate
func (p *CatalogProcessor) Invalidate(ctx context.Context, t *asynq.Task) error {
	if err := p.catalog.InvalidateCatalog(ctx); err != nil {
		return fmt.Errorf("failed to invalidate catalog: %w", err)
	}
	p.logger.InfoContext(ctx, "catalog cache invalidated")
	return nil
}

// Refresh handles TypeCatalogRefresh
func (p *CatalogProcessor) Refresh(ctx context.Context, t *asynq.Task) error {
	start := time.Now()
	if err := p.catalog.Warm(ctx); err != nil {
		return fmt.Errorf("failed to warm catalog: %w", err)
	}
	p.logger.InfoContext(ctx, "catalog cache warmed",
		slog.Duration("duration", time.Since(start)))
	return nil
}
