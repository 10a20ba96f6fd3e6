// internal/adapters/db/catalog_query.go
package db

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/wsvendas/motostock/internal/core/domain"
)

const motorcycleTable = "motorcycles"

// motorcycleColumns is the scan order used by scanMotorcycle
var motorcycleColumns = []string{
	"id", "brand", "model", "year", "color",
	"transmission", "fuel", "start_type", "plate_end",
	"km", "price", "displacement", "images", "image_url",
	"observations", "sold", "display_order", "created_at", "updated_at",
}

// listingOrder is total: id breaks ties between rows created together
var listingOrder = []string{"display_order ASC", "created_at DESC", "id ASC"}

var soldGalleryOrder = []string{"created_at DESC", "id ASC"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CatalogQuery is a rendered page query and its matching count query
type CatalogQuery struct {
	SelectSQL  string
	SelectArgs []interface{}
	CountSQL   string
	CountArgs  []interface{}
}

// BuildCatalogQuery renders the filter into SQL. The same filter always
// renders the same statements and arguments.
func BuildCatalogQuery(filter domain.CatalogFilter) (*CatalogQuery, error) {
	filter.Normalize()
	where := catalogConditions(filter)

	sel := psql.Select(motorcycleColumns...).From(motorcycleTable)
	cnt := psql.Select("COUNT(*)").From(motorcycleTable)
	if len(where) > 0 {
		sel = sel.Where(where)
		cnt = cnt.Where(where)
	}
	sel = sel.OrderBy(listingOrder...).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	selectSQL, selectArgs, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog query: %w", err)
	}
	countSQL, countArgs, err := cnt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog count query: %w", err)
	}

	return &CatalogQuery{
		SelectSQL:  selectSQL,
		SelectArgs: selectArgs,
		CountSQL:   countSQL,
		CountArgs:  countArgs,
	}, nil
}

func catalogConditions(f domain.CatalogFilter) squirrel.And {
	var where squirrel.And

	switch f.Scope {
	case domain.ScopeSold:
		where = append(where, squirrel.Eq{"sold": true})
	case domain.ScopeAdmin:
	default:
		where = append(where, squirrel.Eq{"sold": false})
	}

	if f.MinPrice != nil {
		where = append(where, squirrel.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		where = append(where, squirrel.LtOrEq{"price": *f.MaxPrice})
	}
	if f.MinKm != nil {
		where = append(where, squirrel.GtOrEq{"km": *f.MinKm})
	}
	if f.MaxKm != nil {
		where = append(where, squirrel.LtOrEq{"km": *f.MaxKm})
	}

	if rule, ok := domain.ResolveBrands(f.Brands); ok {
		if len(rule.Include) > 0 {
			where = append(where, squirrel.Eq{"brand": rule.Include})
		}
		if len(rule.Exclude) > 0 {
			where = append(where, squirrel.NotEq{"brand": rule.Exclude})
		}
	}

	if f.Query != "" {
		pattern := "%" + escapeLike(f.Query) + "%"
		text := squirrel.Or{
			squirrel.ILike{"brand": pattern},
			squirrel.ILike{"model": pattern},
		}
		if f.QueryExtended {
			text = append(text,
				squirrel.ILike{"year": pattern},
				squirrel.ILike{"color": pattern},
			)
		}
		where = append(where, text)
	}

	return where
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
