package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/199post/shop/models"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access. Items come back in insertion order with products loaded.
func (s *CartService) GetOrCreate(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.loadCart(userID, &cart)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.Create(&cart).Error; err != nil {
		// A concurrent request may have created the cart first and
		// tripped the unique index on user_id; re-read in that case.
		var existing models.Cart
		if err2 := s.loadCart(userID, &existing); err2 == nil {
			return &existing, nil
		}
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return &cart, nil
}

func (s *CartService) loadCart(userID string, cart *models.Cart) error {
	return s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(cart).Error
}

// AddItem puts quantity units of a product into the user's cart. If the
// product is already in the cart the quantities merge into the existing
// line; the combined quantity is validated against stock and the line is
// left unchanged when it would exceed it.
func (s *CartService) AddItem(userID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var out models.CartItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var item models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > product.Stock {
				return ErrOutOfStock
			}
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				AddedAt:   time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// Relative increment with the stock bound folded into the
			// WHERE, so two concurrent adds to the same line cannot lose
			// an update; zero rows affected means the combined quantity
			// would exceed stock and the line stays unchanged.
			stock := tx.Model(&models.Product{}).Select("stock").Where("id = ?", productID)
			res := tx.Model(&models.CartItem{}).
				Where("id = ? AND quantity + ? <= (?)", item.ID, quantity, stock).
				Update("quantity", gorm.Expr("quantity + ?", quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrOutOfStock
			}
			if err := tx.First(&item, item.ID).Error; err != nil {
				return err
			}
		}

		item.Product = product
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem sets a line's quantity. Zero or negative quantity removes
// the line (that is removal, not an error); the returned item is nil in
// that case.
func (s *CartService) UpdateItem(userID string, itemID uint, quantity int) (*models.CartItem, error) {
	var out *models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.ownedItem(tx, userID, itemID)
		if err != nil {
			return err
		}

		if quantity <= 0 {
			return tx.Delete(item).Error
		}
		if quantity > item.Product.Stock {
			return ErrOutOfStock
		}
		if err := tx.Model(item).Update("quantity", quantity).Error; err != nil {
			return err
		}
		item.Quantity = quantity
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem deletes a line unconditionally and returns the removed
// product's name for caller messaging.
func (s *CartService) RemoveItem(userID string, itemID uint) (string, error) {
	var name string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.ownedItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		name = item.Product.Name
		return tx.Delete(item).Error
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// ownedItem resolves a cart item only when it belongs to the requesting
// user's cart. Foreign and absent items both come back as ErrNotFound so
// the response never leaks whether the item exists.
func (s *CartService) ownedItem(tx *gorm.DB, userID string, itemID uint) (*models.CartItem, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var item models.CartItem
	err := tx.Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
