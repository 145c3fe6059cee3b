package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/199post/shop/models"
	"github.com/199post/shop/pkg/metrics"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips the (user, product) membership: an existing favorite is
// removed, a missing one is created. Returns true when the product was
// added.
func (s *FavoriteService) Toggle(userID string, productID uint) (bool, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var added bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		added = true
		return tx.Create(&models.Favorite{UserID: userID, ProductID: productID}).Error
	})
	if err != nil {
		return false, err
	}

	metrics.FavoritesToggled.Inc()
	return added, nil
}

// List returns the user's favorites, newest first, products loaded.
func (s *FavoriteService) List(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
