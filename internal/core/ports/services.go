// internal/core/ports/services.go
package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/pkg/imaging"
)

// CatalogService defines the read side consumed by the public handlers
type CatalogService interface {
	Stock(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error)
	Search(ctx context.Context, query string) ([]domain.Motorcycle, error)
	Sold(ctx context.Context) ([]domain.Motorcycle, error)
	Detail(ctx context.Context, id uuid.UUID) (*domain.Motorcycle, error)
	SitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error)
}

// AdminService defines the inventory list manager consumed by admin handlers
type AdminService interface {
	Load(ctx context.Context) error
	Items() []domain.Motorcycle
	ToggleSold(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, from, to int) error
	Upsert(ctx context.Context, form domain.MotorcycleForm, editingID *uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// PhotoService crops and stores admin uploads
type PhotoService interface {
	UploadCropped(ctx context.Context, src io.Reader, rect imaging.CropRect) (string, error)
}

// DashboardService summarizes the inventory
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// ImportService creates motorcycles from an uploaded spreadsheet
type ImportService interface {
	Import(ctx context.Context, data []byte) (*domain.ImportResult, error)
}
