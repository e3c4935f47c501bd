package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment representa un pago recibido (AcceptedPayment) que reduce el saldo del cliente.
type Payment struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	ReceivedAt time.Time
}
