package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/response"
)

// AuthorizeRoles is the role gate. It requires the session gate to have
// already resolved the user.
func AuthorizeRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.AbortFromError(c, apperr.Unauthorized("login to access this resource"))
			return
		}
		for _, role := range allowed {
			if u.Role == role {
				c.Next()
				return
			}
		}
		response.AbortFromError(c, apperr.Forbidden("role: "+u.Role+" is not allowed to access this resource"))
	}
}
