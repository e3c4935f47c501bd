package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AcceptPaymentRequest body para POST /api/payments.
type AcceptPaymentRequest struct {
	CustomerID     string          `json:"customer_id"`
	AmountReceived decimal.Decimal `json:"amount_received"`
}

// PaymentResponse pago recibido en respuestas.
type PaymentResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	ReceivedAt     time.Time       `json:"received_at"`
}

// AcceptPaymentResponse pago registrado y saldo almacenado resultante.
type AcceptPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	CustomerBalance decimal.Decimal `json:"customer_balance"`
}

// PaymentFilterRequest filtros de GET /api/payments.
type PaymentFilterRequest struct {
	CustomerID string `query:"customer_id"`
	Year       int    `query:"year"`
	Month      int    `query:"month"`
}

// PaymentListResponse pagos filtrados y su total.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Count    int               `json:"count"`
	Total    decimal.Decimal   `json:"total"`
	Period   string            `json:"period"`
}
