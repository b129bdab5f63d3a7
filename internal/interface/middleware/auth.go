package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/ecommerce-backend/pkg/response"
)

const ctxUserKey = "currentUser"

// Auth is the session gate: it extracts the session token from the cookie,
// verifies it, resolves the full current user from storage, and attaches
// the record to the request context for downstream handlers.
func Auth(users repo.UserRepository, tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortFromError(c, apperr.Unauthorized("login to access this resource"))
			return
		}
		userID, err := tokens.Parse(token)
		if err != nil {
			response.AbortFromError(c, apperr.Unauthorized("invalid or expired token"))
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.AbortFromError(c, apperr.NotFound(apperr.ErrUserNotFound.Error()))
				return
			}
			response.AbortFromError(c, apperr.Dependency("failed to load user", err))
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user resolved by the session gate.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
