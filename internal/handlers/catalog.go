// internal/handlers/catalog.go
package handlers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
)

// CatalogHandler serves the public storefront
type CatalogHandler struct {
	responder
	catalog   ports.CatalogService
	publicURL string
	pageSize  int
	now       func() time.Time
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog ports.CatalogService, publicURL string, pageSize int, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		responder: responder{logger: logger.With(slog.String("handler", "catalog"))},
		catalog:   catalog,
		publicURL: strings.TrimRight(publicURL, "/"),
		pageSize:  pageSize,
		now:       time.Now,
	}
}

// ParseCatalogFilter reads the stock listing query string. Empty or
// malformed numbers apply no constraint; a bad page falls back to 1.
func ParseCatalogFilter(values url.Values) domain.CatalogFilter {
	filter := domain.CatalogFilter{
		Page:  1,
		Query: strings.TrimSpace(values.Get("q")),
		Scope: domain.ScopePublic,
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		filter.Page = p
	}

	filter.MinPrice = parseDecimal(values.Get("minPrice"))
	filter.MaxPrice = parseDecimal(values.Get("maxPrice"))
	filter.MinKm = parseInt(values.Get("minKm"))
	filter.MaxKm = parseInt(values.Get("maxKm"))

	for _, raw := range values["brands"] {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				filter.Brands = append(filter.Brands, b)
			}
		}
	}

	return filter
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ListStock handles GET /api/v1/catalog
func (h *CatalogHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	filter := ParseCatalogFilter(r.URL.Query())
	filter.PageSize = h.pageSize

	page, err := h.catalog.Stock(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list stock", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list motorcycles")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.respondJSON(w, http.StatusOK, page)
}

// Search handles GET /api/v1/catalog/search
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to search catalog", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to search motorcycles")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query": q,
		"items": items,
	})
}

// Sold handles GET /api/v1/catalog/sold
func (h *CatalogHandler) Sold(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Sold(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list sold", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list sold motorcycles")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Detail handles GET /api/v1/catalog/{id}
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid motorcycle ID")
		return
	}

	m, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Motorcycle not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to get motorcycle",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to get motorcycle")
		return
	}

	m.Images = m.Gallery()
	h.respondJSON(w, http.StatusOK, m)
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap handles GET /sitemap.xml
func (h *CatalogHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.SitemapEntries(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build sitemap", slog.String("error", err.Error()))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	today := h.now().UTC().Format(time.RFC3339)
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.publicURL + "/", LastMod: today, ChangeFreq: "daily", Priority: 1},
			{Loc: h.publicURL + "/estoque", LastMod: today, ChangeFreq: "daily", Priority: 0.9},
			{Loc: h.publicURL + "/quem-somos", LastMod: today, ChangeFreq: "monthly", Priority: 0.5},
		},
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/moto/%s", h.publicURL, e.ID),
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode sitemap", slog.String("error", err.Error()))
	}
}

// Robots handles GET /robots.txt
func (h *CatalogHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /private\n\nSitemap: %s/sitemap.xml\n", h.publicURL)
}
