package pageControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/199post/shop/services"
)

// GET /pages/:slug
func GetPage(svc *services.PageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.GetPage(c.Param("slug"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch page"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GET /pages
func ListPages(svc *services.PageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pages, err := svc.ListPages()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pages"})
			return
		}
		c.JSON(http.StatusOK, pages)
	}
}

// GET /footer
func Footer(svc *services.PageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sections, err := svc.FooterSections()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch footer"})
			return
		}
		c.JSON(http.StatusOK, sections)
	}
}
