package billing

import (
	"context"
	"time"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// LedgerTxRunner ejecuta una función dentro de una transacción que incluye clientes, facturas y pagos.
// Si fn retorna error se hace rollback de todo.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		billRepo repository.BillRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// Statement datos de un estado de cuenta listos para renderizar.
type Statement struct {
	Customer    *entity.Customer
	Period      ledger.Period
	Entries     []ledger.Entry
	Totals      ledger.Totals
	GeneratedAt time.Time
	Location    *time.Location
}

// StatementPDFGenerator genera el PDF del estado de cuenta de un cliente.
type StatementPDFGenerator interface {
	GenerateStatement(st Statement) ([]byte, error)
}
