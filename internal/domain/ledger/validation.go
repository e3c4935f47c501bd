package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// ErrInvalidBill agrupa errores de validación de factura.
var ErrInvalidBill = errors.New("factura inválida")

// ValidateBill comprueba que cada línea tenga cantidad positiva con dos decimales como máximo,
// que su subtotal sea precio * cantidad y que el total coincida con la suma de subtotales.
func ValidateBill(bill *entity.Bill) error {
	if bill == nil {
		return fmt.Errorf("%w: factura nula", ErrInvalidBill)
	}
	var errs []error
	if bill.CustomerID == "" {
		errs = append(errs, errors.New("cliente requerido"))
	}
	if len(bill.Lines) == 0 {
		errs = append(errs, errors.New("la factura debe tener al menos una línea"))
	}
	for i, l := range bill.Lines {
		if !l.Quantity.GreaterThan(decimal.Zero) || !HasMoneyScale(l.Quantity) {
			errs = append(errs, fmt.Errorf("línea %d: cantidad inválida (%s)", i+1, l.Quantity.String()))
		}
		if !InRange(l.Quantity) {
			errs = append(errs, fmt.Errorf("línea %d: cantidad fuera de rango", i+1))
		}
		if l.ItemPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("línea %d: precio negativo", i+1))
		}
		if !InRange(l.Subtotal) {
			errs = append(errs, fmt.Errorf("línea %d: subtotal fuera de rango", i+1))
		}
		if want := LineSubtotal(l.ItemPrice, l.Quantity); !l.Subtotal.Equal(want) {
			errs = append(errs, fmt.Errorf("línea %d: subtotal (%s) no coincide con precio * cantidad (%s)", i+1, l.Subtotal.String(), want.String()))
		}
	}
	if want := BillTotal(bill.Lines); !bill.Total.Equal(want) {
		errs = append(errs, fmt.Errorf("total (%s) no coincide con la suma de subtotales (%s)", bill.Total.String(), want.String()))
	}
	if !InRange(bill.Total) {
		errs = append(errs, fmt.Errorf("total fuera de rango (%s)", bill.Total.String()))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidBill}, errs...)...)
	}
	return nil
}

// ValidatePaymentAmount exige importe positivo con dos decimales como máximo.
func ValidatePaymentAmount(amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return errors.New("el importe debe ser positivo")
	}
	if !HasMoneyScale(amount) {
		return errors.New("el importe admite como máximo dos decimales")
	}
	if !InRange(amount) {
		return fmt.Errorf("el importe debe ser menor que %s", MaxAmount.String())
	}
	return nil
}

// ValidatePrice exige precio no negativo con dos decimales como máximo.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.New("el precio no puede ser negativo")
	}
	if !HasMoneyScale(price) {
		return errors.New("el precio admite como máximo dos decimales")
	}
	if !InRange(price) {
		return fmt.Errorf("el precio debe ser menor que %s", MaxAmount.String())
	}
	return nil
}
