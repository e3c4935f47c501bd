package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id.
type CustomerRequest struct {
	Name        string `json:"name"`
	ShopNo      string `json:"shop_no"`
	PhoneNumber string `json:"phone_number"`
}

// CustomerResponse cliente con su saldo derivado (facturado - pagado).
type CustomerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ShopNo        string          `json:"shop_no"`
	PhoneNumber   string          `json:"phone_number"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Balance       decimal.Decimal `json:"balance"`
	StoredBalance decimal.Decimal `json:"stored_balance"`
	Drift         decimal.Decimal `json:"drift"` // stored_balance - balance
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CustomerListResponse listado paginado.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Page      PageResponse       `json:"page"`
}

// BillDueResponse saldo pendiente de un cliente (pantalla de cobro).
type BillDueResponse struct {
	CustomerID  string          `json:"customer_id"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	BillDue     decimal.Decimal `json:"bill_due"`
}

// ReconcileResponse resultado de recalcular el saldo almacenado.
type ReconcileResponse struct {
	CustomerID      string          `json:"customer_id"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	Balance         decimal.Decimal `json:"balance"`
	Drift           decimal.Decimal `json:"drift"`
	Corrected       bool            `json:"corrected"`
}

// ReconcileAllResponse resumen de la conciliación masiva.
type ReconcileAllResponse struct {
	Checked   int                 `json:"checked"`
	Corrected int                 `json:"corrected"`
	Results   []ReconcileResponse `json:"results"`
}
