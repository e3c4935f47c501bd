package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyTotalDTO fila del historial mensual: un cliente y sus totales en el periodo.
type MonthlyTotalDTO struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Period       string          `json:"period"`
	TotalBilled  decimal.Decimal `json:"total_billed"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Net          decimal.Decimal `json:"net"`
}

// MonthlyHistoryResponse respuesta de GET /api/history/monthly.
type MonthlyHistoryResponse struct {
	Period      string            `json:"period"`
	Rows        []MonthlyTotalDTO `json:"rows"`
	TotalBilled decimal.Decimal   `json:"total_billed"`
	TotalPaid   decimal.Decimal   `json:"total_paid"`
}

// HistoryEntryDTO movimiento del historial de un cliente.
// Los pagos aparecen como "Payment Received" con total negativo.
type HistoryEntryDTO struct {
	Kind        string          `json:"kind"` // bill_line | payment
	Date        time.Time       `json:"date"`
	ReferenceID string          `json:"reference_id"`
	ItemName    string          `json:"item_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	ItemPrice   decimal.Decimal `json:"item_price"`
	Total       decimal.Decimal `json:"total"`
}

// CustomerHistoryResponse respuesta de GET /api/customers/:id/history.
type CustomerHistoryResponse struct {
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Period       string            `json:"period"`
	Entries      []HistoryEntryDTO `json:"entries"`
	TotalBilled  decimal.Decimal   `json:"total_billed"`
	TotalPaid    decimal.Decimal   `json:"total_paid"`
	Net          decimal.Decimal   `json:"net"`
}
