package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/199post/shop/services"
)

const relatedProductsLimit = 4

// GET /products
func GetProducts(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := buildFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		products, total, err := svc.ListProducts(filter)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			case errors.Is(err, services.ErrInvalidFilter):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    total,
		})
	}
}

// GET /products/:id
func GetProductByID(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		product, err := svc.GetProduct(uint(id))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		related, err := svc.RelatedProducts(product, relatedProductsLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product":          product,
			"related_products": related,
		})
	}
}

// GET /categories
func GetCategories(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func buildFilter(c *gin.Context) (services.ProductFilter, error) {
	filter := services.ProductFilter{
		CategorySlug: c.Query("category"),
		Query:        c.Query("search"),
		Sort:         c.Query("sort"),
	}

	if raw := c.Query("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &price
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid page")
		}
		filter.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid page_size")
		}
		filter.PageSize = size
	}

	return filter, nil
}
