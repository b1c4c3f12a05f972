package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It is decoded from the remote listing or read from the products table,
// and never mutated afterwards.
type Product struct {
	ID       int             `json:"id" gorm:"primaryKey"`
	Title    string          `json:"title" gorm:"not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image    string          `json:"image"`
	Category string          `json:"category" gorm:"index;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

// CartLine is a product held in the cart together with its quantity.
type CartLine struct {
	Product
	Quantity int
}

// Subtotal returns price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
