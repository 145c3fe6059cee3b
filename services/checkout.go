package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/199post/shop/models"
	"github.com/199post/shop/pkg/metrics"
)

type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// Checkout converts the user's cart into an order as one all-or-nothing
// unit: stock is re-validated and decremented per line, each line's
// effective price is frozen into an order item, the order total is the
// sum of those frozen prices, and the cart is emptied. Any failure rolls
// the whole thing back, leaving cart and stock untouched.
func (s *CheckoutService) Checkout(userID string) (*models.Order, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cart.Items))

		for _, item := range cart.Items {
			// Price and name are re-read inside the transaction so the
			// snapshot matches the stock the guard below sees.
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d no longer exists", ErrInsufficientStock, item.ProductID)
				}
				return err
			}

			// Guarded decrement: the WHERE clause is the stock check.
			// Zero rows affected means another checkout got there first
			// or the cart simply asks for more than is left.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			price := product.EffectivePrice()
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     price,
			})
		}

		order = models.Order{
			UserID:     userID,
			Reference:  newOrderReference(),
			Status:     models.OrderStatusPending,
			TotalPrice: total,
			Items:      orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear exactly the lines that went into the order. A line a
		// concurrent add committed after the snapshot survives in the
		// cart instead of being destroyed unordered. The cart row
		// itself persists, empty, for reuse.
		itemIDs := make([]uint, 0, len(cart.Items))
		for _, item := range cart.Items {
			itemIDs = append(itemIDs, item.ID)
		}
		return tx.Where("id IN ?", itemIDs).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			metrics.CheckoutConflicts.Inc()
		}
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	return &order, nil
}

func newOrderReference() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
