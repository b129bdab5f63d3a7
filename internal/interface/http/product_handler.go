package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ecommerce-backend/internal/application"
	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/ecommerce-backend/internal/infrastructure/gcs"
	"github.com/oksasatya/ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/response"
)

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

func productJSON(p *entity.Product) gin.H {
	return gin.H{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"category":     p.Category,
		"stock":        p.Stock,
		"images":       p.Images,
		"ratings":      p.Ratings,
		"review_count": p.ReviewCount,
		"created_by":   p.CreatedBy,
		"created_at":   p.CreatedAt,
	}
}

func productListJSON(products []entity.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	return out
}

// Create POST /admin/create (multipart, optional file field(s) "images")
func (h *ProductHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthorized("login to access this resource"))
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := strings.TrimSpace(c.PostForm("category"))
	priceStr := strings.TrimSpace(c.PostForm("price"))
	stockStr := strings.TrimSpace(c.PostForm("stock"))
	if name == "" || description == "" || category == "" || priceStr == "" || stockStr == "" {
		response.FromError(c, apperr.Validation("provide all the product details"))
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		response.FromError(c, apperr.Validation("price must be a positive number"))
		return
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil || stock < 0 {
		response.FromError(c, apperr.Validation("stock must be a non-negative integer"))
		return
	}

	var images []application.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				response.FromError(c, apperr.Validation("could not read image file"))
				return
			}
			defer func() { _ = f.Close() }()
			images = append(images, application.ImageUpload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Folder:      gcs.ProductFolder,
			})
		}
	}

	in := application.CreateProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Stock:       stock,
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), u.ID, in, images)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "product created successfully", response.Envelope{"product": productJSON(p)})
}

// parseFilters reads the optional, independently composable query filters.
func parseFilters(c *gin.Context) repo.ListFilters {
	f := repo.ListFilters{
		Availability: c.Query("availability"),
		Category:     c.Query("category"),
		Search:       c.Query("search"),
	}
	// price is a "min-max" range; both bounds are required together.
	if pr := c.Query("price"); pr != "" {
		parts := strings.SplitN(pr, "-", 2)
		if len(parts) == 2 {
			minV, minErr := strconv.ParseFloat(parts[0], 64)
			maxV, maxErr := strconv.ParseFloat(parts[1], 64)
			if minErr == nil && maxErr == nil {
				f.PriceMin = &minV
				f.PriceMax = &maxV
			}
		}
	}
	if r := c.Query("ratings"); r != "" {
		if v, err := strconv.ParseFloat(r, 64); err == nil {
			f.MinRating = &v
		}
	}
	return f
}

// List GET / (products with filters and pagination)
func (h *ProductHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	listing, err := h.Svc.FetchAllProducts(c.Request.Context(), parseFilters(c), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", response.Envelope{
		"products":         productListJSON(listing.Products),
		"totalProducts":    listing.TotalProducts,
		"newProducts":      productListJSON(listing.NewProducts),
		"topRatedProducts": productListJSON(listing.TopRatedProducts),
	})
}
