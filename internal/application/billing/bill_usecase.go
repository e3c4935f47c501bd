package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/ports"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// BillUseCase crea y consulta facturas. Cada alta mueve el saldo del cliente
// en la misma transacción que inserta la factura.
type BillUseCase struct {
	txRunner     LedgerTxRunner
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	billRepo     repository.BillRepository
	events       ports.EventPublisher
	loc          *time.Location
	now          func() time.Time
}

// NewBillUseCase construye el caso de uso. loc es la zona usada para "hoy" y los filtros por mes.
func NewBillUseCase(
	txRunner LedgerTxRunner,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	billRepo repository.BillRepository,
	events ports.EventPublisher,
	loc *time.Location,
) *BillUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &BillUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		billRepo:     billRepo,
		events:       events,
		loc:          loc,
		now:          time.Now,
	}
}

// Create arma la factura con los precios actuales del menú, la persiste y suma su total
// al saldo del cliente. Si algo falla no queda ni factura ni cambio de saldo.
func (uc *BillUseCase) Create(ctx context.Context, in dto.CreateBillRequest) (*dto.CreateBillResponse, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la factura debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	if !domain.ValidID(in.CustomerID) {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	// Ítems y precios (fuera de la tx, solo lectura)
	now := uc.now()
	bill := &entity.Bill{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         now,
		Lines:        make([]entity.BillLine, 0, len(in.Lines)),
	}
	for i, l := range in.Lines {
		if l.ItemID == "" {
			return nil, fmt.Errorf("%w: línea %d sin ítem", domain.ErrInvalidInput, i+1)
		}
		if !l.Quantity.GreaterThan(decimal.Zero) || !ledger.HasMoneyScale(l.Quantity) {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser positiva con dos decimales como máximo", domain.ErrInvalidInput, i+1)
		}
		if !domain.ValidID(l.ItemID) {
			return nil, fmt.Errorf("ítem %s: %w", l.ItemID, domain.ErrNotFound)
		}
		item, err := uc.itemRepo.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("ítem %s: %w", l.ItemID, domain.ErrNotFound)
		}
		bill.Lines = append(bill.Lines, entity.BillLine{
			ID:        uuid.New().String(),
			BillID:    bill.ID,
			Position:  i + 1,
			ItemID:    item.ID,
			ItemName:  item.Name,
			ItemPrice: item.Price,
			Quantity:  l.Quantity,
			Subtotal:  ledger.LineSubtotal(item.Price, l.Quantity),
		})
	}
	bill.Total = ledger.BillTotal(bill.Lines)
	if err := ledger.ValidateBill(bill); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var balance decimal.Decimal
	err = uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		billRepo repository.BillRepository,
		_ repository.PaymentRepository,
	) error {
		if err := billRepo.Create(ctx, bill); err != nil {
			return err
		}
		balance, err = customerRepo.AdjustBalance(ctx, bill.CustomerID, bill.Total)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.events, ports.LedgerEvent{
		Type:        ports.EventBillCreated,
		CustomerID:  bill.CustomerID,
		ReferenceID: bill.ID,
		Amount:      bill.Total,
		Balance:     balance,
	})

	return &dto.CreateBillResponse{
		Bill:            toBillResponse(bill),
		CustomerBalance: balance,
	}, nil
}

// Get devuelve una factura con sus líneas.
func (uc *BillUseCase) Get(ctx context.Context, id string) (*dto.BillResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	resp := toBillResponse(bill)
	return &resp, nil
}

// List filtra por cliente y periodo (mes y/o año) y devuelve el total filtrado.
func (uc *BillUseCase) List(ctx context.Context, in dto.BillFilterRequest) (*dto.BillListResponse, error) {
	period, err := ledger.NewPeriod(in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.CustomerID != "" && !domain.ValidID(in.CustomerID) {
		return nil, fmt.Errorf("%w: customer_id inválido", domain.ErrInvalidInput)
	}
	bills, err := uc.loadBills(ctx, in.CustomerID, period)
	if err != nil {
		return nil, err
	}
	return toBillList(bills, period.Label()), nil
}

// Today devuelve las facturas de hoy: [00:00, 00:00 del día siguiente) en la zona configurada.
func (uc *BillUseCase) Today(ctx context.Context) (*dto.BillListResponse, error) {
	now := uc.now()
	from, to := ledger.DayBounds(now, uc.loc)
	bills, err := uc.billRepo.List(ctx, repository.BillFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return toBillList(bills, now.In(uc.loc).Format("2006-01-02")), nil
}

// Lines aplana las líneas de las facturas de un cliente en el periodo (diálogo de historial de facturas).
func (uc *BillUseCase) Lines(ctx context.Context, customerID string, period ledger.Period) ([]dto.HistoryEntryDTO, error) {
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
	bills, err := uc.loadBills(ctx, customerID, period)
	if err != nil {
		return nil, err
	}
	return toHistoryEntries(ledger.Entries(bills, nil)), nil
}

// loadBills usa el rango contiguo en la consulta cuando existe; "mes de cualquier año"
// se filtra en memoria.
func (uc *BillUseCase) loadBills(ctx context.Context, customerID string, period ledger.Period) ([]*entity.Bill, error) {
	filter := repository.BillFilter{CustomerID: customerID}
	if from, to, ok := period.Bounds(uc.loc); ok {
		filter.From, filter.To = from, to
	}
	bills, err := uc.billRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ledger.FilterBills(bills, customerID, period, uc.loc), nil
}

func toBillList(bills []*entity.Bill, label string) *dto.BillListResponse {
	out := &dto.BillListResponse{
		Bills:  make([]dto.BillResponse, 0, len(bills)),
		Total:  decimal.Zero,
		Period: label,
	}
	for _, b := range bills {
		out.Bills = append(out.Bills, toBillResponse(b))
		out.Total = out.Total.Add(b.Total)
	}
	out.Count = len(out.Bills)
	return out
}

func toBillResponse(b *entity.Bill) dto.BillResponse {
	lines := make([]dto.BillLineResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, dto.BillLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			ItemPrice: l.ItemPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return dto.BillResponse{
		ID:           b.ID,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		Total:        b.Total,
		Date:         b.Date,
		Lines:        lines,
	}
}

func toHistoryEntries(entries []ledger.Entry) []dto.HistoryEntryDTO {
	out := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryDTO{
			Kind:        string(e.Kind),
			Date:        e.Date,
			ReferenceID: e.ReferenceID,
			ItemName:    e.Description,
			Quantity:    e.Quantity,
			ItemPrice:   e.UnitPrice,
			Total:       e.Amount,
		})
	}
	return out
}
