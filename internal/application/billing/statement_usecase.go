package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// StatementUseCase genera el estado de cuenta (PDF) de un cliente para un periodo.
type StatementUseCase struct {
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	paymentRepo  repository.PaymentRepository
	generator    StatementPDFGenerator
	loc          *time.Location
}

// NewStatementUseCase construye el caso de uso inyectando todas sus dependencias.
func NewStatementUseCase(
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	generator StatementPDFGenerator,
	loc *time.Location,
) *StatementUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &StatementUseCase{
		customerRepo: customerRepo,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		generator:    generator,
		loc:          loc,
	}
}

// Download carga cliente, facturas y pagos del periodo y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el cliente no existe.
func (uc *StatementUseCase) Download(ctx context.Context, customerID string, period ledger.Period) (pdfBytes []byte, filename string, err error) {
	if customerID == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if !domain.ValidID(customerID) {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	bf := repository.BillFilter{CustomerID: customerID}
	pf := repository.PaymentFilter{CustomerID: customerID}
	if from, to, ok := period.Bounds(uc.loc); ok {
		bf.From, bf.To = from, to
		pf.From, pf.To = from, to
	}
	bills, err := uc.billRepo.List(ctx, bf)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: facturas: %w", err)
	}
	payments, err := uc.paymentRepo.List(ctx, pf)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: pagos: %w", err)
	}
	bills = ledger.FilterBills(bills, customerID, period, uc.loc)
	payments = ledger.FilterPayments(payments, customerID, period, uc.loc)

	pdfBytes, err = uc.generator.GenerateStatement(Statement{
		Customer:    customer,
		Period:      period,
		Entries:     ledger.Entries(bills, payments),
		Totals:      ledger.Summarize(bills, payments, ledger.Period{}, nil),
		GeneratedAt: time.Now().In(uc.loc),
		Location:    uc.loc,
	})
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generar PDF: %w", err)
	}
	return pdfBytes, statementFilename(customer.Name, period), nil
}

func statementFilename(name string, p ledger.Period) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "cliente"
	}
	suffix := "todo"
	switch {
	case p.Year != 0 && p.Month != 0:
		suffix = fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case p.Year != 0:
		suffix = fmt.Sprintf("%04d", p.Year)
	case p.Month != 0:
		suffix = fmt.Sprintf("mes-%02d", p.Month)
	}
	return fmt.Sprintf("estado-%s-%s.pdf", slug, suffix)
}
