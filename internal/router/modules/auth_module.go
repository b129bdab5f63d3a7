package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ecommerce-backend/internal/container"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	handlers "github.com/oksasatya/ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
)

// AuthModule wires the auth HTTP surface.
// Public: POST /register, POST /login, POST /password/forgot,
// PUT /password/reset/:token
// Protected: GET /me, POST /logout, PUT /password/update, PUT /me/update

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	Tokens  *helpers.TokenManager
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, tokens *helpers.TokenManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/password/forgot", forgotLimiter, m.Handler.ForgotPassword)
	rg.PUT("/password/reset/:token", resetLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.Tokens))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
		auth.PUT("/password/update", m.Handler.UpdatePassword)
		auth.PUT("/me/update", m.Handler.UpdateProfile)
	}
}
