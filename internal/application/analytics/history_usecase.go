package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// HistoryUseCase historial del libro: totales por cliente y movimientos de un cliente.
type HistoryUseCase struct {
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	paymentRepo  repository.PaymentRepository
	loc          *time.Location
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	loc *time.Location,
) *HistoryUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryUseCase{
		customerRepo: customerRepo,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		loc:          loc,
	}
}

// MonthlyTotals una fila por cliente con movimientos en el periodo: facturado, pagado y neto.
// Con customerID != "" solo se devuelve ese cliente (aunque no tenga movimientos).
func (uc *HistoryUseCase) MonthlyTotals(ctx context.Context, period ledger.Period, customerID string) (*dto.MonthlyHistoryResponse, error) {
	var customers []*entity.Customer
	if customerID != "" {
		if !domain.ValidID(customerID) {
			return nil, domain.ErrNotFound
		}
		c, err := uc.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		customers = []*entity.Customer{c}
	} else {
		var err error
		if customers, err = uc.customerRepo.ListAll(ctx); err != nil {
			return nil, err
		}
	}

	bills, payments, err := uc.load(ctx, customerID, period)
	if err != nil {
		return nil, err
	}
	byCustomer := ledger.ByCustomer(bills, payments, period, uc.loc)

	label := period.Label()
	out := &dto.MonthlyHistoryResponse{
		Period:      label,
		Rows:        make([]dto.MonthlyTotalDTO, 0, len(customers)),
		TotalBilled: decimal.Zero,
		TotalPaid:   decimal.Zero,
	}
	for _, c := range customers {
		t, ok := byCustomer[c.ID]
		if !ok && customerID == "" {
			continue
		}
		out.Rows = append(out.Rows, dto.MonthlyTotalDTO{
			CustomerID:   c.ID,
			CustomerName: c.Name,
			Period:       label,
			TotalBilled:  t.Billed,
			TotalPaid:    t.Paid,
			Net:          t.Balance(),
		})
		out.TotalBilled = out.TotalBilled.Add(t.Billed)
		out.TotalPaid = out.TotalPaid.Add(t.Paid)
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].CustomerName < out.Rows[j].CustomerName })
	return out, nil
}

// CustomerHistory líneas de factura y pagos del cliente en el periodo, ordenados por fecha.
// Los pagos aparecen como "Payment Received" con total negativo.
func (uc *HistoryUseCase) CustomerHistory(ctx context.Context, customerID string, period ledger.Period) (*dto.CustomerHistoryResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidID(customerID) {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	bills, payments, err := uc.load(ctx, customerID, period)
	if err != nil {
		return nil, err
	}
	bills = ledger.FilterBills(bills, customerID, period, uc.loc)
	payments = ledger.FilterPayments(payments, customerID, period, uc.loc)
	t := ledger.Summarize(bills, payments, ledger.Period{}, nil)

	entries := ledger.Entries(bills, payments)
	out := &dto.CustomerHistoryResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Period:       period.Label(),
		Entries:      make([]dto.HistoryEntryDTO, 0, len(entries)),
		TotalBilled:  t.Billed,
		TotalPaid:    t.Paid,
		Net:          t.Balance(),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.HistoryEntryDTO{
			Kind:        string(e.Kind),
			Date:        e.Date,
			ReferenceID: e.ReferenceID,
			ItemName:    e.Description,
			Quantity:    e.Quantity,
			ItemPrice:   e.UnitPrice,
			Total:       e.Amount,
		})
	}
	return out, nil
}

// load consulta facturas y pagos acotando por rango cuando el periodo tiene año.
func (uc *HistoryUseCase) load(ctx context.Context, customerID string, period ledger.Period) ([]*entity.Bill, []*entity.Payment, error) {
	bf := repository.BillFilter{CustomerID: customerID}
	pf := repository.PaymentFilter{CustomerID: customerID}
	if from, to, ok := period.Bounds(uc.loc); ok {
		bf.From, bf.To = from, to
		pf.From, pf.To = from, to
	}
	bills, err := uc.billRepo.List(ctx, bf)
	if err != nil {
		return nil, nil, fmt.Errorf("historial: facturas: %w", err)
	}
	payments, err := uc.paymentRepo.List(ctx, pf)
	if err != nil {
		return nil, nil, fmt.Errorf("historial: pagos: %w", err)
	}
	return bills, payments, nil
}
