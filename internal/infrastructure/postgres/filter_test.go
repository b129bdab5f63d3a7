package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
)

func f64(v float64) *float64 { return &v }

func TestQueryBuilderNumbersPlaceholdersSequentially(t *testing.T) {
	qb := NewQueryBuilder()
	qb.Where("p.price BETWEEN ? AND ?", 10.0, 20.0)
	qb.Where("p.category ILIKE ?", "%shoes%")

	assert.Equal(t, "WHERE p.price BETWEEN $1 AND $2 AND p.category ILIKE $3", qb.WhereClause())
	assert.Equal(t, []any{10.0, 20.0, "%shoes%"}, qb.Args())
}

func TestQueryBuilderBindContinuesNumbering(t *testing.T) {
	qb := NewQueryBuilder()
	qb.Where("p.ratings >= ?", 4.0)

	assert.Equal(t, "$2", qb.Bind(10))
	assert.Equal(t, "$3", qb.Bind(20))
	assert.Equal(t, []any{4.0, 10, 20}, qb.Args())
}

func TestQueryBuilderEmpty(t *testing.T) {
	qb := NewQueryBuilder()
	assert.Equal(t, "", qb.WhereClause())
	assert.Empty(t, qb.Args())
}

func TestFilterBuilderAvailability(t *testing.T) {
	cases := []struct {
		availability string
		want         string
	}{
		{repo.AvailabilityInStock, "WHERE p.stock > 5"},
		{repo.AvailabilityLimited, "WHERE p.stock > 0 AND p.stock <= 5"},
		{repo.AvailabilityOutOfStock, "WHERE p.stock = 0"},
		{"bogus", ""},
		{"", ""},
	}
	for _, tc := range cases {
		qb := filterBuilder(repo.ListFilters{Availability: tc.availability})
		assert.Equal(t, tc.want, qb.WhereClause())
		assert.Empty(t, qb.Args(), "availability bounds are structural, never bound")
	}
}

func TestFilterBuilderPriceRange(t *testing.T) {
	qb := filterBuilder(repo.ListFilters{PriceMin: f64(5), PriceMax: f64(15)})
	assert.Equal(t, "WHERE p.price BETWEEN $1 AND $2", qb.WhereClause())
	assert.Equal(t, []any{5.0, 15.0}, qb.Args())

	// half-open ranges are ignored
	qb = filterBuilder(repo.ListFilters{PriceMin: f64(5)})
	assert.Equal(t, "", qb.WhereClause())
}

func TestFilterBuilderCategoryAndRating(t *testing.T) {
	qb := filterBuilder(repo.ListFilters{Category: "electronics", MinRating: f64(4)})
	assert.Equal(t, "WHERE p.category ILIKE $1 AND p.ratings >= $2", qb.WhereClause())
	assert.Equal(t, []any{"%electronics%", 4.0}, qb.Args())
}

func TestFilterBuilderSearchBindsBothColumns(t *testing.T) {
	qb := filterBuilder(repo.ListFilters{Search: "mug"})
	assert.Equal(t, "WHERE (p.name ILIKE $1 OR p.description ILIKE $2)", qb.WhereClause())
	assert.Equal(t, []any{"%mug%", "%mug%"}, qb.Args())
}

func TestFilterBuilderCombinesAllFilters(t *testing.T) {
	qb := filterBuilder(repo.ListFilters{
		Availability: repo.AvailabilityInStock,
		PriceMin:     f64(1),
		PriceMax:     f64(99),
		Category:     "home",
		MinRating:    f64(3.5),
		Search:       "mug",
	})
	assert.Equal(t,
		"WHERE p.stock > 5 AND p.price BETWEEN $1 AND $2 AND p.category ILIKE $3 AND p.ratings >= $4 AND (p.name ILIKE $5 OR p.description ILIKE $6)",
		qb.WhereClause())
	assert.Equal(t, []any{1.0, 99.0, "%home%", 3.5, "%mug%", "%mug%"}, qb.Args())
}

func TestFilterBuilderNeverInterpolatesValues(t *testing.T) {
	qb := filterBuilder(repo.ListFilters{Search: "'; DROP TABLE products; --"})
	assert.NotContains(t, qb.WhereClause(), "DROP TABLE")
	assert.Equal(t, []any{"%'; DROP TABLE products; --%", "%'; DROP TABLE products; --%"}, qb.Args())
}
