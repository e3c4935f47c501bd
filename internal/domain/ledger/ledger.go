// Package ledger contiene la aritmética del libro de clientes: totales de factura,
// saldos (facturado - pagado) y agregaciones por cliente y periodo.
// Funciones puras sobre listas ya cargadas; no acceden a la base de datos.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// MoneyPlaces decimales de todos los importes.
const MoneyPlaces = 2

// LineSubtotal = cantidad * precio, redondeado a centavos.
func LineSubtotal(price, quantity decimal.Decimal) decimal.Decimal {
	return price.Mul(quantity).Round(MoneyPlaces)
}

// BillTotal suma los subtotales de las líneas.
func BillTotal(lines []entity.BillLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total.Round(MoneyPlaces)
}

// MaxAmount cota exclusiva de precios, cantidades e importes: las columnas son NUMERIC(14,2).
var MaxAmount = decimal.New(1, 12)

// InRange indica si |d| < MaxAmount.
func InRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(MaxAmount)
}

// HasMoneyScale indica si d no tiene más de dos decimales significativos.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}

// Totals acumulados de un cliente (o del negocio completo).
type Totals struct {
	Billed   decimal.Decimal
	Paid     decimal.Decimal
	Bills    int
	Payments int
}

// Balance saldo pendiente: facturado - pagado. Negativo = saldo a favor del cliente.
func (t Totals) Balance() decimal.Decimal {
	return t.Billed.Sub(t.Paid)
}

// Drift diferencia entre el saldo almacenado y el derivado de facturas y pagos.
func (t Totals) Drift(stored decimal.Decimal) decimal.Decimal {
	return stored.Sub(t.Balance())
}

// Summarize acumula facturas y pagos dentro del periodo.
func Summarize(bills []*entity.Bill, payments []*entity.Payment, p Period, loc *time.Location) Totals {
	var t Totals
	for _, b := range bills {
		if !p.Contains(b.Date, loc) {
			continue
		}
		t.Billed = t.Billed.Add(b.Total)
		t.Bills++
	}
	for _, pay := range payments {
		if !p.Contains(pay.ReceivedAt, loc) {
			continue
		}
		t.Paid = t.Paid.Add(pay.Amount)
		t.Payments++
	}
	return t
}

// ByCustomer agrupa Summarize por cliente en una sola pasada.
// Los clientes sin movimientos en el periodo no aparecen en el mapa.
func ByCustomer(bills []*entity.Bill, payments []*entity.Payment, p Period, loc *time.Location) map[string]Totals {
	out := make(map[string]Totals)
	for _, b := range bills {
		if !p.Contains(b.Date, loc) {
			continue
		}
		t := out[b.CustomerID]
		t.Billed = t.Billed.Add(b.Total)
		t.Bills++
		out[b.CustomerID] = t
	}
	for _, pay := range payments {
		if !p.Contains(pay.ReceivedAt, loc) {
			continue
		}
		t := out[pay.CustomerID]
		t.Paid = t.Paid.Add(pay.Amount)
		t.Payments++
		out[pay.CustomerID] = t
	}
	return out
}

// FilterBills devuelve las facturas del periodo (y del cliente si customerID != "").
func FilterBills(bills []*entity.Bill, customerID string, p Period, loc *time.Location) []*entity.Bill {
	out := make([]*entity.Bill, 0, len(bills))
	for _, b := range bills {
		if customerID != "" && b.CustomerID != customerID {
			continue
		}
		if p.Contains(b.Date, loc) {
			out = append(out, b)
		}
	}
	return out
}

// FilterPayments devuelve los pagos del periodo (y del cliente si customerID != "").
func FilterPayments(payments []*entity.Payment, customerID string, p Period, loc *time.Location) []*entity.Payment {
	out := make([]*entity.Payment, 0, len(payments))
	for _, pay := range payments {
		if customerID != "" && pay.CustomerID != customerID {
			continue
		}
		if p.Contains(pay.ReceivedAt, loc) {
			out = append(out, pay)
		}
	}
	return out
}

// EntryKind tipo de movimiento en el historial de un cliente.
type EntryKind string

const (
	EntryBillLine EntryKind = "bill_line"
	EntryPayment  EntryKind = "payment"
)

// PaymentDescription descripción fija de los pagos en el historial.
const PaymentDescription = "Payment Received"

// Entry movimiento del historial: una línea de factura (importe positivo)
// o un pago (importe negativo).
type Entry struct {
	Kind        EntryKind
	Date        time.Time
	ReferenceID string // bill ID o payment ID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Entries aplana facturas y pagos en movimientos ordenados por fecha.
// A igual fecha, las líneas de factura van antes que los pagos.
func Entries(bills []*entity.Bill, payments []*entity.Payment) []Entry {
	out := make([]Entry, 0, len(bills)+len(payments))
	for _, b := range bills {
		for _, l := range b.Lines {
			out = append(out, Entry{
				Kind:        EntryBillLine,
				Date:        b.Date,
				ReferenceID: b.ID,
				Description: l.ItemName,
				Quantity:    l.Quantity,
				UnitPrice:   l.ItemPrice,
				Amount:      l.Subtotal,
			})
		}
	}
	for _, p := range payments {
		out = append(out, Entry{
			Kind:        EntryPayment,
			Date:        p.ReceivedAt,
			ReferenceID: p.ID,
			Description: PaymentDescription,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   p.Amount,
			Amount:      p.Amount.Neg(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Kind == EntryBillLine && out[j].Kind == EntryPayment
	})
	return out
}
