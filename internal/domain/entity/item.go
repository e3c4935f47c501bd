package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del menú.
type Item struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
