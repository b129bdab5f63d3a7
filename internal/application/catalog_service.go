package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
)

const (
	newArrivalsWindowDays = 30
	panelLimit            = 8
	topRatedMinimum       = 4.5
)

// CatalogService handles product creation and filtered listing.
type CatalogService struct {
	Repo         repo.ProductRepository
	Images       ImageStore
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESIndex      string
	PriceDivisor float64
	PageSize     int
}

func NewCatalogService(r repo.ProductRepository, images ImageStore, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, priceDivisor float64, pageSize int) *CatalogService {
	return &CatalogService{
		Repo:         r,
		Images:       images,
		Logger:       logger,
		ES:           es,
		ESIndex:      esIndex,
		PriceDivisor: priceDivisor,
		PageSize:     pageSize,
	}
}

// CreateProductInput carries the validated scalar fields.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
}

// CreateProduct uploads the supplied images, normalizes the submitted
// price by the configured divisor, and persists the product under the
// elevated caller's id.
func (s *CatalogService) CreateProduct(ctx context.Context, creatorID string, in CreateProductInput, images []ImageUpload) (*entity.Product, error) {
	uploaded := make([]entity.ProductImage, 0, len(images))
	for _, img := range images {
		id, url, err := s.Images.Upload(ctx, img.Reader, img.Folder, img.Filename, img.ContentType)
		if err != nil {
			return nil, apperr.Dependency("failed to upload product image", err)
		}
		uploaded = append(uploaded, entity.ProductImage{PublicID: id, URL: url})
	}

	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price / s.PriceDivisor,
		Category:    in.Category,
		Stock:       in.Stock,
		Images:      uploaded,
		CreatedBy:   creatorID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, apperr.Dependency("failed to create product", err)
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// indexProduct mirrors the new product into Elasticsearch best-effort.
// Reads never consult the index.
func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"stock":       p.Stock,
		"ratings":     p.Ratings,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

// ProductListing is the combined fetch-all response: the filtered page,
// its unpaginated total, and the two fixed panels.
type ProductListing struct {
	Products         []entity.Product
	TotalProducts    int
	NewProducts      []entity.Product
	TopRatedProducts []entity.Product
}

// FetchAllProducts runs the count and page queries with one shared WHERE
// clause, then the two filter-independent panel queries.
func (s *CatalogService) FetchAllProducts(ctx context.Context, f repo.ListFilters, page int) (*ProductListing, error) {
	if page < 1 {
		page = 1
	}
	limit := s.PageSize
	offset := (page - 1) * limit

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return nil, apperr.Dependency("failed to count products", err)
	}
	products, err := s.Repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, apperr.Dependency("failed to list products", err)
	}
	newProducts, err := s.Repo.NewArrivals(ctx, newArrivalsWindowDays, panelLimit)
	if err != nil {
		return nil, apperr.Dependency("failed to list new arrivals", err)
	}
	topRated, err := s.Repo.TopRated(ctx, topRatedMinimum, panelLimit)
	if err != nil {
		return nil, apperr.Dependency("failed to list top rated products", err)
	}

	return &ProductListing{
		Products:         products,
		TotalProducts:    total,
		NewProducts:      newProducts,
		TopRatedProducts: topRated,
	}, nil
}
