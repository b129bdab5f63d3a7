package router

import "github.com/gin-gonic/gin"

// Module is a feature surface (auth, catalog) that mounts its routes on
// the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
