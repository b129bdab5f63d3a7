package entity

import "time"

// ProductImage is an external image-host reference; the list is stored as
// JSONB on the product row.
type ProductImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Product is a catalog record. Ratings stay within [0,5] and stock never
// goes negative; both are enforced by the schema.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
	Images      []ProductImage
	Ratings     float64
	ReviewCount int // populated by the listing join, not a column
	CreatedBy   string
	CreatedAt   time.Time
}

// ProductReview is cascade-deleted with its product.
type ProductReview struct {
	ID        string
	ProductID string
	UserID    string
	Rating    float64
	Comment   string
	CreatedAt time.Time
}
