package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/199post/shop/pkg/metrics"
)

// SetupRoutes is the single entry-point that wires up the public catalog
// surface and the JWT-protected user surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	SetupCatalogRoutes(r, db)
	SetupUserRoutes(r, db)
}
