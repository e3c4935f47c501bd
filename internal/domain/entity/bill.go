package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill representa la cabecera de una factura de venta a un cliente.
// CustomerName es una copia tomada al crear la factura.
type Bill struct {
	ID           string
	CustomerID   string
	CustomerName string
	Total        decimal.Decimal
	Date         time.Time
	Lines        []BillLine
}

// BillLine línea de factura. ItemName e ItemPrice se copian del menú al facturar,
// así editar o borrar el ítem no altera facturas ya emitidas.
type BillLine struct {
	ID        string
	BillID    string
	Position  int
	ItemID    string
	ItemName  string
	ItemPrice decimal.Decimal
	Quantity  decimal.Decimal
	Subtotal  decimal.Decimal
}
