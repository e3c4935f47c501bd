package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen de la pantalla de inicio.
type DashboardSummaryDTO struct {
	DateLabel        string             `json:"date_label"`
	TotalCustomers   int                `json:"total_customers"`
	TotalBillAmounts decimal.Decimal    `json:"total_bill_amounts"`
	TotalPayments    int                `json:"total_payments"`
	TotalPaidAmount  decimal.Decimal    `json:"total_paid_amount"`
	Outstanding      decimal.Decimal    `json:"outstanding"`
	TodaysPurchases  []TodayPurchaseDTO `json:"todays_purchases"`
}

// TodayPurchaseDTO compra del día (cliente, hora HH:MM e importe).
type TodayPurchaseDTO struct {
	BillID       string          `json:"bill_id"`
	CustomerName string          `json:"customer_name"`
	PurchaseTime string          `json:"purchase_time"`
	BillAmount   decimal.Decimal `json:"bill_amount"`
}
