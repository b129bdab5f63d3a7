package postgres

import (
	"strconv"
	"strings"

	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
)

// QueryBuilder accumulates WHERE fragments with their bound values and
// renders consistently numbered placeholders, so no caller ever tracks
// `$n` indices by hand or interpolates a filter value into query text.
type QueryBuilder struct {
	conds []string
	args  []any
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Where appends a condition. The fragment uses one `?` per value; each is
// rewritten to the next `$n` placeholder in argument order.
func (b *QueryBuilder) Where(fragment string, values ...any) *QueryBuilder {
	for _, v := range values {
		b.args = append(b.args, v)
		fragment = strings.Replace(fragment, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.conds = append(b.conds, fragment)
	return b
}

// Bind registers a value outside the WHERE clause (LIMIT/OFFSET) and
// returns its placeholder.
func (b *QueryBuilder) Bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// WhereClause renders the accumulated conditions joined with AND, or an
// empty string when no filter is active.
func (b *QueryBuilder) WhereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the bound values in placeholder order.
func (b *QueryBuilder) Args() []any {
	return b.args
}

// filterBuilder translates the optional catalog filters into conditions.
// Availability bounds are structural, not user input; every user-supplied
// value is bound.
func filterBuilder(f repo.ListFilters) *QueryBuilder {
	qb := NewQueryBuilder()
	switch f.Availability {
	case repo.AvailabilityInStock:
		qb.Where("p.stock > 5")
	case repo.AvailabilityLimited:
		qb.Where("p.stock > 0 AND p.stock <= 5")
	case repo.AvailabilityOutOfStock:
		qb.Where("p.stock = 0")
	}
	if f.PriceMin != nil && f.PriceMax != nil {
		qb.Where("p.price BETWEEN ? AND ?", *f.PriceMin, *f.PriceMax)
	}
	if f.Category != "" {
		qb.Where("p.category ILIKE ?", "%"+f.Category+"%")
	}
	if f.MinRating != nil {
		qb.Where("p.ratings >= ?", *f.MinRating)
	}
	if f.Search != "" {
		s := "%" + f.Search + "%"
		qb.Where("(p.name ILIKE ? OR p.description ILIKE ?)", s, s)
	}
	return qb
}
