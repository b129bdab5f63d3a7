package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ecommerce-backend/internal/container"
	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	handlers "github.com/oksasatya/ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
)

// CatalogModule wires the product HTTP surface.
// Public: GET / (filtered listing)
// Protected (admin): POST /admin/create

type CatalogModule struct {
	Handler *handlers.ProductHandler
	Users   repo.UserRepository
	Tokens  *helpers.TokenManager
}

func NewCatalogModule(h *handlers.ProductHandler, users repo.UserRepository, tokens *helpers.TokenManager) *CatalogModule {
	return &CatalogModule{Handler: h, Users: users, Tokens: tokens}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	rg.GET("/", listLimiter, m.Handler.List)

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Users, m.Tokens))
	admin.Use(middleware.AuthorizeRoles(entity.RoleAdmin))
	{
		admin.POST("/create", m.Handler.Create)
	}
}
