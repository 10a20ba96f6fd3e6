// internal/core/domain/catalog.go
package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope selects which slice of the inventory a query sees
type Scope string

const (
	ScopePublic Scope = "public" // unsold only
	ScopeSold   Scope = "sold"   // sold only
	ScopeAdmin  Scope = "admin"  // everything
)

// Paging defaults. MaxPage keeps the row offset inside int32 so any page
// past the end is still a valid query.
const (
	DefaultPageSize = 12
	MaxPageSize     = 48
	MaxPage         = math.MaxInt32 / MaxPageSize
)

// OtherBrands is the pseudo-brand matching everything outside MainBrands
const OtherBrands = "Outras"

// MainBrands are the brands with a dedicated filter entry
var MainBrands = []string{"Honda", "Yamaha", "Shineray"}

// CatalogFilter holds every optional constraint of a catalog query.
// Nil bounds mean no constraint.
type CatalogFilter struct {
	Page     int
	PageSize int
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	MinKm    *int
	MaxKm    *int
	Brands   []string
	Query    string
	Scope    Scope

	// QueryExtended also matches Query against year and color
	QueryExtended bool
}

// Normalize applies defaults and clamps paging values
func (f *CatalogFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Scope == "" {
		f.Scope = ScopePublic
	}
	f.Query = strings.TrimSpace(f.Query)
}

// Offset returns the number of rows skipped before the page
func (f *CatalogFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// BrandRule is the resolved brand constraint
type BrandRule struct {
	Include []string // brand IN (...)
	Exclude []string // brand NOT IN (...)
}

// ResolveBrands applies the "Outras" rule to a brand selection.
// With "Outras" selected, only the main brands that were not picked are
// excluded; when every main brand is picked there is no constraint at all.
// Without "Outras", the selection is matched exactly. An empty selection
// yields no constraint.
func ResolveBrands(brands []string) (BrandRule, bool) {
	var named []string
	seen := make(map[string]bool)
	hasOther := false
	for _, b := range brands {
		b = strings.TrimSpace(b)
		switch {
		case b == "" || seen[b]:
		case b == OtherBrands:
			hasOther = true
		default:
			seen[b] = true
			named = append(named, b)
		}
	}

	if hasOther {
		var exclude []string
		for _, main := range MainBrands {
			if !seen[main] {
				exclude = append(exclude, main)
			}
		}
		if len(exclude) == 0 {
			return BrandRule{}, false
		}
		return BrandRule{Exclude: exclude}, true
	}
	if len(named) == 0 {
		return BrandRule{}, false
	}
	return BrandRule{Include: named}, true
}

// BrandBucket maps a brand to its dashboard bucket
func BrandBucket(brand string) string {
	for _, b := range MainBrands {
		if strings.EqualFold(b, brand) {
			return b
		}
	}
	return OtherBrands
}

// CatalogPage is one page of a catalog query
type CatalogPage struct {
	Items      []Motorcycle `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalCount int64        `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
}

// TotalPagesFor returns ceil(total/size)
func TotalPagesFor(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// SitemapEntry is a public detail page listed in sitemap.xml
type SitemapEntry struct {
	ID           uuid.UUID
	LastModified time.Time
}
