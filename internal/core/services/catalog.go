// internal/core/services/catalog.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
)

// Cache key layout. Everything under catalog: and dash: is dropped on
// invalidation.
const (
	catalogKeyPrefix   = "catalog:"
	dashboardKeyPrefix = "dash:"

	keyStock   = catalogKeyPrefix + "stock:"
	keySearch  = catalogKeyPrefix + "search:"
	keyDetail  = catalogKeyPrefix + "detail:"
	keySold    = catalogKeyPrefix + "sold"
	keySitemap = catalogKeyPrefix + "sitemap"
)

// CatalogService serves the public read side through a read-through cache
type CatalogService struct {
	repo   ports.MotorcycleRepository
	cache  ports.CacheRepository
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var (
	_ ports.CatalogService     = (*CatalogService)(nil)
	_ ports.CatalogInvalidator = (*CatalogService)(nil)
)

// NewCatalogService creates a catalog service. cache may be nil.
func NewCatalogService(repo ports.MotorcycleRepository, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("service", "catalog")),
	}
}

// Stock returns one page of available motorcycles
func (s *CatalogService) Stock(ctx context.Context, filter domain.CatalogFilter) (*domain.CatalogPage, error) {
	filter.Scope = domain.ScopePublic
	filter.QueryExtended = false
	filter.Normalize()

	page, err := readThrough(ctx, s, keyStock+filterKey(filter), func(ctx context.Context) (*domain.CatalogPage, error) {
		return s.repo.Search(ctx, filter)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return page, nil
}

// Search matches available motorcycles by brand, model, year or color
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Motorcycle, error) {
	filter := domain.CatalogFilter{
		Page:          1,
		PageSize:      domain.MaxPageSize,
		Query:         query,
		Scope:         domain.ScopePublic,
		QueryExtended: true,
	}
	filter.Normalize()

	items, err := readThrough(ctx, s, keySearch+strings.ToLower(filter.Query), func(ctx context.Context) ([]domain.Motorcycle, error) {
		page, err := s.repo.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return items, nil
}

// Sold returns the sold gallery, newest first
func (s *CatalogService) Sold(ctx context.Context) ([]domain.Motorcycle, error) {
	items, err := readThrough(ctx, s, keySold, s.repo.ListSold)
	if err != nil {
		return nil, fmt.Errorf("failed to list sold motorcycles: %w", err)
	}
	return items, nil
}

// Detail returns one motorcycle or domain.ErrNotFound
func (s *CatalogService) Detail(ctx context.Context, id uuid.UUID) (*domain.Motorcycle, error) {
	m, err := readThrough(ctx, s, keyDetail+id.String(), func(ctx context.Context) (*domain.Motorcycle, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get motorcycle %s: %w", id, err)
	}
	return m, nil
}

// SitemapEntries lists available motorcycles for sitemap.xml
func (s *CatalogService) SitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error) {
	entries, err := readThrough(ctx, s, keySitemap, s.repo.SitemapEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitemap entries: %w", err)
	}
	return entries, nil
}

// InvalidateCatalog drops every cached catalog and dashboard entry
func (s *CatalogService) InvalidateCatalog(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	for _, prefix := range []string{catalogKeyPrefix, dashboardKeyPrefix} {
		if err := s.cache.DeletePattern(ctx, prefix+"*"); err != nil {
			return fmt.Errorf("failed to invalidate %s*: %w", prefix, err)
		}
	}
	s.logger.InfoContext(ctx, "catalog cache invalidated")
	return nil
}

// Warm invalidates the cache and preloads the first stock page,
// the sold gallery and the sitemap.
func (s *CatalogService) Warm(ctx context.Context) error {
	if err := s.InvalidateCatalog(ctx); err != nil {
		return err
	}
	if _, err := s.Stock(ctx, domain.CatalogFilter{}); err != nil {
		return err
	}
	if _, err := s.Sold(ctx); err != nil {
		return err
	}
	_, err := s.SitemapEntries(ctx)
	return err
}

// readThrough serves key from the cache, collapsing concurrent misses into
// one store call. Cache failures fall back to the store.
func readThrough[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &out); err == nil {
			return out, nil
		}
	}

	// Waiters share this call, so it must outlive the caller that started it
	shared := context.WithoutCancel(ctx)
	v, err, wasShared := s.group.Do(key, func() (interface{}, error) {
		val, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetWithTTL(shared, key, val, s.ttl); err != nil {
				s.logger.WarnContext(ctx, "failed to cache catalog entry",
					slog.String("key", key),
					slog.Any("error", err))
			}
		}
		return val, nil
	})
	if err != nil {
		return out, err
	}
	if wasShared {
		s.logger.DebugContext(ctx, "catalog read shared", slog.String("key", key))
	}
	return v.(T), nil
}

// filterKey encodes a normalized filter as a stable cache key
func filterKey(f domain.CatalogFilter) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("size", strconv.Itoa(f.PageSize))
	if f.MinPrice != nil {
		v.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", f.MaxPrice.String())
	}
	if f.MinKm != nil {
		v.Set("minKm", strconv.Itoa(*f.MinKm))
	}
	if f.MaxKm != nil {
		v.Set("maxKm", strconv.Itoa(*f.MaxKm))
	}
	if len(f.Brands) > 0 {
		brands := append([]string(nil), f.Brands...)
		sort.Strings(brands)
		v.Set("brands", strings.Join(brands, ","))
	}
	if f.Query != "" {
		v.Set("q", strings.ToLower(f.Query))
	}
	return v.Encode()
}
