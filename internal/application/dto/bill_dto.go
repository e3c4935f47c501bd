package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body para POST /api/bills.
type CreateBillRequest struct {
	CustomerID string            `json:"customer_id"`
	Lines      []BillLineRequest `json:"lines"`
}

// BillLineRequest línea pedida: ítem del menú y cantidad (hasta dos decimales).
type BillLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BillResponse factura con sus líneas.
type BillResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Total        decimal.Decimal    `json:"total"`
	Date         time.Time          `json:"date"`
	Lines        []BillLineResponse `json:"lines"`
}

// BillLineResponse línea de factura en respuestas.
type BillLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	ItemPrice decimal.Decimal `json:"item_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// BillFilterRequest filtros de GET /api/bills.
type BillFilterRequest struct {
	CustomerID string `query:"customer_id"`
	Year       int    `query:"year"`
	Month      int    `query:"month"`
}

// BillListResponse facturas filtradas y su total.
type BillListResponse struct {
	Bills  []BillResponse  `json:"bills"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Period string          `json:"period"`
}

// CreateBillResponse factura creada y saldo almacenado resultante del cliente.
type CreateBillResponse struct {
	Bill            BillResponse    `json:"bill"`
	CustomerBalance decimal.Decimal `json:"customer_balance"`
}
