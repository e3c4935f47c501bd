package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente (tienda) con saldo corriente.
// BillAmount es el saldo almacenado: se mueve en la misma transacción que cada factura o pago.
type Customer struct {
	ID         string
	Name       string
	ShopNo     string
	Phone      string
	BillAmount decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
