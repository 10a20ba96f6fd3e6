// internal/core/ports/notifier.go
package ports

import (
	"context"

	"github.com/wsvendas/motostock/internal/core/domain"
)

// Notifier receives the outcome of every admin action
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// CatalogInvalidator drops cached public catalog pages after a mutation
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// NotificationFeed exposes the most recent admin notifications, newest first
type NotificationFeed interface {
	Recent(limit int) []domain.Notification
}
