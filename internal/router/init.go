package router

import (
	"github.com/oksasatya/ecommerce-backend/internal/application"
	"github.com/oksasatya/ecommerce-backend/internal/container"
	"github.com/oksasatya/ecommerce-backend/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/ecommerce-backend/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/ecommerce-backend/internal/router/modules"
)

// InitModules builds the auth and catalog dependency graphs from the
// container singletons and registers both modules.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	products := pginfra.NewProductRepository(container.GetPGPool())
	images := gcs.NewStore(container.GetGCS(), cfg.GCSBucket)

	authSvc := application.NewAuthService(
		users,
		container.GetTokens(),
		images,
		container.GetMailgun(),
		container.GetRabbitPub(),
		logger,
		cfg.ResetTokenTTL,
	)
	catalogSvc := application.NewCatalogService(
		products,
		images,
		logger,
		container.GetES(),
		cfg.ESProductsIndex,
		cfg.PriceDivisor,
		cfg.PageSize,
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	productHandler := handlers.NewProductHandler(catalogSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, users, container.GetTokens()))
	r.Add(modules.NewCatalogModule(productHandler, users, container.GetTokens()))
}
