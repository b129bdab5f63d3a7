package repository

import (
	"context"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
)

// Availability buckets for the stock filter.
const (
	AvailabilityInStock    = "in-stock"     // stock > 5
	AvailabilityLimited    = "limited"      // 0 < stock <= 5
	AvailabilityOutOfStock = "out-of-stock" // stock = 0
)

// ListFilters are the optional, independently composable catalog filters.
// All active filters combine with AND; every value is bound, never
// interpolated.
type ListFilters struct {
	Availability string
	PriceMin     *float64
	PriceMax     *float64
	Category     string
	MinRating    *float64
	Search       string
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Count(ctx context.Context, f ListFilters) (int, error)
	// List returns the filtered page joined against reviews, newest first.
	List(ctx context.Context, f ListFilters, limit, offset int) ([]entity.Product, error)
	// NewArrivals returns products created within the last windowDays days.
	NewArrivals(ctx context.Context, windowDays, limit int) ([]entity.Product, error)
	// TopRated returns products rated at or above minRating, best first.
	TopRated(ctx context.Context, minRating float64, limit int) ([]entity.Product, error)
}
