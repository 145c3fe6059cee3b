package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/199post/shop/models"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100

	// The price a customer pays: the sale price while it undercuts the
	// list price. Used for price bounds and price sorting so listings
	// agree with what the product page shows.
	effectivePriceExpr = "CASE WHEN sale_price IS NOT NULL AND sale_price < price THEN sale_price ELSE price END"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNew       = "new"
	SortPopular   = "popular"
)

type ProductFilter struct {
	CategorySlug string
	Query        string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Sort         string
	Page         int
	PageSize     int
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListProducts applies free-text, price and category filters, sorts, and
// paginates. Selecting a root category includes products from its direct
// subcategories; selecting a subcategory narrows to exactly it. The
// returned count is the total of matching rows before pagination.
func (s *CatalogService) ListProducts(f ProductFilter) ([]models.Product, int64, error) {
	if err := f.validate(); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Product{})

	if f.Query != "" {
		like := "%" + f.Query + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	if f.MinPrice != nil {
		query = query.Where(effectivePriceExpr+" >= ?", f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where(effectivePriceExpr+" <= ?", f.MaxPrice)
	}

	if f.CategorySlug != "" {
		ids, err := s.categoryScope(f.CategorySlug)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("category_id IN ?", ids)
	}

	// Count on a cloned session so the main query's statement is not
	// consumed before sorting and pagination are applied.
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case SortPriceAsc:
		query = query.Order(effectivePriceExpr + " ASC")
	case SortPriceDesc:
		query = query.Order(effectivePriceExpr + " DESC")
	case SortPopular:
		// Ranked by total quantity ever ordered; products never ordered
		// sort as zero and fall back to newest-first among themselves.
		query = query.
			Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
			Group("products.id").
			Order("COALESCE(SUM(order_items.quantity), 0) DESC").
			Order("products.created_at DESC")
	default: // SortNew and unset
		query = query.Order("created_at DESC")
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var products []models.Product
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (f ProductFilter) validate() error {
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return ErrInvalidFilter
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return ErrInvalidFilter
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return ErrInvalidFilter
	}
	switch f.Sort {
	case "", SortPriceAsc, SortPriceDesc, SortNew, SortPopular:
		return nil
	default:
		return ErrInvalidFilter
	}
}

// categoryScope resolves a slug to the category IDs it covers: the
// category itself plus, for a root, its direct subcategories.
func (s *CatalogService) categoryScope(slug string) ([]uint, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ids := []uint{category.ID}
	if category.IsRoot() {
		var subIDs []uint
		err := s.db.Model(&models.Category{}).
			Where("parent_id = ?", category.ID).
			Pluck("id", &subIDs).Error
		if err != nil {
			return nil, err
		}
		ids = append(ids, subIDs...)
	}
	return ids, nil
}

func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// RelatedProducts returns up to limit other products from the same
// category, newest first.
func (s *CatalogService) RelatedProducts(product *models.Product, limit int) ([]models.Product, error) {
	var related []models.Product
	err := s.db.Where("category_id = ? AND id <> ?", product.CategoryID, product.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&related).Error
	return related, err
}

// ListCategories returns root categories with their subcategories, for
// navigation menus.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Preload("Subcategories").
		Where("parent_id IS NULL").
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}
