// internal/core/ports/motorcycle_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/domain"
)

// MotorcycleRepository defines the persistence port for the motorcycles table.
// This interface is implemented by the database adapter.
type MotorcycleRepository interface {
	// ListAll returns every row in admin order, unpaginated.
	ListAll(ctx context.Context) ([]domain.Motorcycle, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Motorcycle, error)
	// Insert appends a new unsold row after the current last position.
	Insert(ctx context.Context, form *domain.MotorcycleForm) (*domain.Motorcycle, error)
	Update(ctx context.Context, id uuid.UUID, form *domain.MotorcycleForm) error
	SetSold(ctx context.Context, id uuid.UUID, sold bool) error
	SetDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
	// ApplyOrder persists every assignment in one transaction.
	ApplyOrder(ctx context.Context, assignments []domain.OrderAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error)
	ListSold(ctx context.Context) ([]domain.Motorcycle, error)
	SitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
