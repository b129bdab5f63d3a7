package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
)

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.category, p.stock,
		p.images, p.ratings, p.created_by, p.created_at,
		COUNT(r.id) AS review_count
	FROM products p
	LEFT JOIN product_reviews r ON p.id = r.product_id`

const productGroupBy = `
	GROUP BY p.id`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, stock, images, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, ratings, created_at
	`, p.Name, p.Description, p.Price, p.Category, p.Stock, images, p.CreatedBy)

	return row.Scan(&p.ID, &p.Ratings, &p.CreatedAt)
}

func (r *ProductRepository) Count(ctx context.Context, f repo.ListFilters) (int, error) {
	qb := filterBuilder(f)
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products p `+qb.WhereClause(),
		qb.Args()...,
	).Scan(&total)
	return total, err
}

func (r *ProductRepository) List(ctx context.Context, f repo.ListFilters, limit, offset int) ([]entity.Product, error) {
	qb := filterBuilder(f)
	query := productSelect + "\n\t" + qb.WhereClause() + productGroupBy + `
	ORDER BY p.created_at DESC
	LIMIT ` + qb.Bind(limit) + ` OFFSET ` + qb.Bind(offset)

	return r.queryProducts(ctx, query, qb.Args()...)
}

func (r *ProductRepository) NewArrivals(ctx context.Context, windowDays, limit int) ([]entity.Product, error) {
	query := productSelect + `
	WHERE p.created_at >= NOW() - ($1 * INTERVAL '1 day')` + productGroupBy + `
	ORDER BY p.created_at DESC
	LIMIT $2`

	return r.queryProducts(ctx, query, windowDays, limit)
}

func (r *ProductRepository) TopRated(ctx context.Context, minRating float64, limit int) ([]entity.Product, error) {
	query := productSelect + `
	WHERE p.ratings >= $1` + productGroupBy + `
	ORDER BY p.ratings DESC, p.created_at DESC
	LIMIT $2`

	return r.queryProducts(ctx, query, minRating, limit)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	var images []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Stock, &images, &p.Ratings, &p.CreatedBy, &p.CreatedAt,
		&p.ReviewCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var _ repo.ProductRepository = (*ProductRepository)(nil)
