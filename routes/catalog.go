package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	pageControllers "github.com/199post/shop/controllers/page"
	productControllers "github.com/199post/shop/controllers/product"
	"github.com/199post/shop/services"
)

// SetupCatalogRoutes registers the public, read-only storefront surface.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	catalog := services.NewCatalogService(db)
	pages := services.NewPageService(db)

	r.GET("/products", productControllers.GetProducts(catalog))          // GET /products
	r.GET("/products/:id", productControllers.GetProductByID(catalog))   // GET /products/:id
	r.GET("/categories", productControllers.GetCategories(catalog))      // GET /categories

	r.GET("/pages", pageControllers.ListPages(pages))     // GET /pages
	r.GET("/pages/:slug", pageControllers.GetPage(pages)) // GET /pages/:slug
	r.GET("/footer", pageControllers.Footer(pages))       // GET /footer
}
