// internal/adapters/db/motorcycle_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
)

// motorcycleRepository implements ports.MotorcycleRepository
type motorcycleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMotorcycleRepository creates a new motorcycle repository
func NewMotorcycleRepository(db *Database, logger *slog.Logger) ports.MotorcycleRepository {
	return &motorcycleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "motorcycles")),
	}
}

// ListAll returns every row in admin order
func (r *motorcycleRepository) ListAll(ctx context.Context) ([]domain.Motorcycle, error) {
	query, args, err := psql.Select(motorcycleColumns...).
		From(motorcycleTable).
		OrderBy(listingOrder...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list motorcycles: %w", err)
	}

	items, err := ScanAll(rows, scanMotorcycle)
	if err != nil {
		return nil, fmt.Errorf("failed to scan motorcycles: %w", err)
	}
	return items, nil
}

// FindByID returns domain.ErrNotFound when the id does not exist
func (r *motorcycleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Motorcycle, error) {
	query, args, err := psql.Select(motorcycleColumns...).
		From(motorcycleTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find query: %w", err)
	}

	m, err := scanMotorcycle(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find motorcycle: %w", err)
	}
	return &m, nil
}

// Insert places the new row after the current last position in one statement
func (r *motorcycleRepository) Insert(ctx context.Context, form *domain.MotorcycleForm) (*domain.Motorcycle, error) {
	values := form.Columns()
	values["sold"] = false
	values["display_order"] = squirrel.Expr(
		"(SELECT COALESCE(MAX(display_order) + 1, 0) FROM " + motorcycleTable + ")")

	query, args, err := psql.Insert(motorcycleTable).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(motorcycleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	m, err := scanMotorcycle(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert motorcycle: %w", err)
	}

	r.logger.DebugContext(ctx, "motorcycle inserted",
		slog.String("id", m.ID.String()),
		slog.Int("display_order", m.DisplayOrder))

	return &m, nil
}

// Update writes every mapped column of the form
func (r *motorcycleRepository) Update(ctx context.Context, id uuid.UUID, form *domain.MotorcycleForm) error {
	return r.updateColumns(ctx, id, form.Columns())
}

// SetSold updates only the sold flag
func (r *motorcycleRepository) SetSold(ctx context.Context, id uuid.UUID, sold bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"sold": sold})
}

// SetDisplayOrder updates only the display position
func (r *motorcycleRepository) SetDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"display_order": order})
}

func (r *motorcycleRepository) updateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	query, args, err := psql.Update(motorcycleTable).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update motorcycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyOrder writes all display positions in a single transaction
func (r *motorcycleRepository) ApplyOrder(ctx context.Context, assignments []domain.OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	query := "UPDATE " + motorcycleTable + " SET display_order = $1 WHERE id = $2"

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, a := range assignments {
			batch.Queue(query, a.DisplayOrder, a.ID)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for _, a := range assignments {
			tag, err := br.Exec()
			if err != nil {
				return fmt.Errorf("failed to update order of %s: %w", a.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("failed to update order of %s: %w", a.ID, domain.ErrNotFound)
			}
		}
		return br.Close()
	})
}

// Delete removes the row. Stored photos are left untouched.
func (r *motorcycleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(motorcycleTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete motorcycle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search runs the filtered page query and the count query concurrently
func (r *motorcycleRepository) Search(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
	filter.Normalize()

	q, err := BuildCatalogQuery(filter)
	if err != nil {
		return nil, err
	}

	var (
		items []domain.Motorcycle
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRow(gctx, q.CountSQL, q.CountArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count motorcycles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, q.SelectSQL, q.SelectArgs...)
		if err != nil {
			return fmt.Errorf("failed to query catalog: %w", err)
		}
		items, err = ScanAll(rows, scanMotorcycle)
		if err != nil {
			return fmt.Errorf("failed to scan catalog: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.CatalogPage{
		Items:      items,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
		TotalPages: domain.TotalPagesFor(total, filter.PageSize),
	}, nil
}

// ListSold returns the sold gallery, newest first
func (r *motorcycleRepository) ListSold(ctx context.Context) ([]domain.Motorcycle, error) {
	query, args, err := psql.Select(motorcycleColumns...).
		From(motorcycleTable).
		Where(squirrel.Eq{"sold": true}).
		OrderBy(soldGalleryOrder...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sold query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sold motorcycles: %w", err)
	}
	return ScanAll(rows, scanMotorcycle)
}

// SitemapEntries lists the unsold detail pages
func (r *motorcycleRepository) SitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error) {
	query, args, err := psql.Select("id", "created_at").
		From(motorcycleTable).
		Where(squirrel.Eq{"sold": false}).
		OrderBy(listingOrder...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sitemap query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitemap entries: %w", err)
	}
	return ScanAll(rows, func(row pgx.Row) (domain.SitemapEntry, error) {
		var e domain.SitemapEntry
		err := row.Scan(&e.ID, &e.LastModified)
		return e, err
	})
}

// DashboardStats runs the totals and per-brand aggregates concurrently
func (r *motorcycleRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	var counts []domain.BrandShare

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.db.QueryRow(gctx, `
			SELECT
				COUNT(*) FILTER (WHERE NOT sold),
				COUNT(*) FILTER (WHERE sold),
				COALESCE(SUM(price) FILTER (WHERE NOT sold), 0),
				COALESCE(SUM(price) FILTER (WHERE sold), 0)
			FROM motorcycles`,
		).Scan(&stats.Available, &stats.Sold, &stats.StockValue, &stats.SoldValue)
		if err != nil {
			return fmt.Errorf("failed to aggregate totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx,
			`SELECT brand, COUNT(*) FROM motorcycles WHERE NOT sold GROUP BY brand ORDER BY brand`)
		if err != nil {
			return fmt.Errorf("failed to aggregate brands: %w", err)
		}
		counts, err = ScanAll(rows, func(row pgx.Row) (domain.BrandShare, error) {
			var b domain.BrandShare
			err := row.Scan(&b.Brand, &b.Count)
			return b, err
		})
		if err != nil {
			return fmt.Errorf("failed to scan brand counts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.ComputeAverageTicket()
	stats.Brands = bucketBrands(counts)
	return stats, nil
}

// bucketBrands folds raw brand counts into the main brands plus "Outras"
func bucketBrands(counts []domain.BrandShare) []domain.BrandShare {
	buckets := make(map[string]int64, len(domain.MainBrands)+1)
	for _, c := range counts {
		buckets[domain.BrandBucket(c.Brand)] += c.Count
	}

	out := make([]domain.BrandShare, 0, len(domain.MainBrands)+1)
	for _, b := range domain.MainBrands {
		out = append(out, domain.BrandShare{Brand: b, Count: buckets[b]})
	}
	return append(out, domain.BrandShare{Brand: domain.OtherBrands, Count: buckets[domain.OtherBrands]})
}

// scanMotorcycle reads one row in motorcycleColumns order. Legacy rows may
// lack start_type, displacement and images.
func scanMotorcycle(row pgx.Row) (domain.Motorcycle, error) {
	var (
		m            domain.Motorcycle
		startType    *string
		displacement *int32
		imageURL     *string
		price        decimal.Decimal
	)

	err := row.Scan(
		&m.ID, &m.Brand, &m.Model, &m.Year, &m.Color,
		&m.Transmission, &m.Fuel, &startType, &m.PlateEnd,
		&m.Km, &price, &displacement, &m.Images, &imageURL,
		&m.Observations, &m.Sold, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Motorcycle{}, err
	}

	m.Price = price
	m.StartType = domain.StartElectric
	if startType != nil && *startType != "" {
		m.StartType = domain.StartType(*startType)
	}
	if displacement != nil {
		m.Displacement = int(*displacement)
	}
	if imageURL != nil {
		m.ImageURL = *imageURL
	}
	m.Images = domain.ResolveImages(m.Images, m.ImageURL)

	return m, nil
}
