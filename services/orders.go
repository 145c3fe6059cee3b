package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/199post/shop/models"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// List returns the user's orders, newest first, with line items and
// their products loaded in the same pass.
func (s *OrderService) List(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Get returns a single order only when it belongs to the requesting
// user; a foreign order is indistinguishable from an absent one.
func (s *OrderService) Get(userID string, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}
