package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting operator contact
	OrderStatusProcessing OrderStatus = "processing" // operator is handling the order
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string          `gorm:"index;not null" json:"user_id"`
	Reference  string          `gorm:"uniqueIndex;not null" json:"reference"`
	Status     OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_price"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItem freezes the effective price at checkout time. Later product
// price changes never touch placed orders.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
}

func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
