package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento del libro de clientes (routing key en el broker).
const (
	EventBillCreated       = "bill.created"
	EventPaymentAccepted   = "payment.accepted"
	EventBalanceReconciled = "balance.reconciled"
)

// LedgerEvent notificación emitida después de confirmar una escritura que mueve el saldo.
type LedgerEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	CustomerID  string          `json:"customer_id"`
	ReferenceID string          `json:"reference_id"` // bill o payment ID
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"` // saldo almacenado tras el movimiento
	OccurredAt  time.Time       `json:"occurred_at"`
}

// EventPublisher puerto de salida para eventos del libro.
// Un fallo al publicar nunca revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}
