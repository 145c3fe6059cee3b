package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/199post/shop/models"
)

// newTestDB opens a private in-memory database. A single connection is
// used so concurrent transactions serialize instead of hitting sqlite
// write locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
		&models.Page{},
		&models.FooterSection{},
		&models.FooterLink{},
	))
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *uint) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

// createProduct seeds a product; salePrice == "" means no sale price.
func createProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price, salePrice string, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
	}
	if salePrice != "" {
		product.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(salePrice))
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
