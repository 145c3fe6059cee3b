package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/199post/shop/models"
)

type PageService struct {
	db *gorm.DB
}

func NewPageService(db *gorm.DB) *PageService {
	return &PageService{db: db}
}

func (s *PageService) GetPage(slug string) (*models.Page, error) {
	var page models.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (s *PageService) ListPages() ([]models.Page, error) {
	var pages []models.Page
	err := s.db.Order("title ASC").Find(&pages).Error
	return pages, err
}

// FooterSections returns the footer content model: sections and their
// links, both in their configured sort order.
func (s *PageService) FooterSections() ([]models.FooterSection, error) {
	var sections []models.FooterSection
	err := s.db.
		Preload("Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("footer_links.sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&sections).Error
	return sections, err
}
