package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  uint                `gorm:"index;not null" json:"category_id"`
	Name        string              `gorm:"not null" json:"name"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"not null;type:decimal(10,2)" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Stock       int                 `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// HasDiscount reports whether a sale price is set and actually below the
// list price. A sale price at or above the list price does not count.
func (p *Product) HasDiscount() bool {
	return p.SalePrice.Valid && p.SalePrice.Decimal.LessThan(p.Price)
}

// EffectivePrice is the price a customer pays right now: the sale price
// while a discount is active, the list price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// DiscountPercentage returns the rounded-down discount badge value, 0
// when there is no active discount.
func (p *Product) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	diff := p.Price.Sub(p.SalePrice.Decimal)
	return int(diff.Div(p.Price).Mul(decimal.NewFromInt(100)).IntPart())
}
