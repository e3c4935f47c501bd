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

// PhoneDigits cantidad exacta de dígitos del teléfono de un cliente.
const PhoneDigits = 10

// CustomerUseCase casos de uso para clientes: alta, edición, saldos y conciliación.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	billRepo    repository.BillRepository
	paymentRepo repository.PaymentRepository
	txRunner    LedgerTxRunner
	events      ports.EventPublisher
}

// NewCustomerUseCase construye el caso de uso. events puede ser nil.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	txRunner LedgerTxRunner,
	events ports.EventPublisher,
) *CustomerUseCase {
	return &CustomerUseCase{
		repo:        repo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		txRunner:    txRunner,
		events:      events,
	}
}

// Create crea un nuevo cliente con saldo cero.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       in.Name,
		ShopNo:     in.ShopNo,
		Phone:      in.PhoneNumber,
		BillAmount: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer, ledger.Totals{})
	return &resp, nil
}

// List lista clientes con facturado, pagado y saldo derivado.
// Facturas y pagos se cargan una sola vez y se agrupan por cliente.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := uc.billRepo.List(ctx, repository.BillFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{})
	if err != nil {
		return nil, err
	}
	totals := ledger.ByCustomer(bills, payments, ledger.Period{}, nil)

	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c, totals[c.ID]))
	}
	return &dto.CustomerListResponse{
		Customers: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get devuelve el cliente con saldo derivado, saldo almacenado y drift.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.getCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := uc.totalsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer, totals)
	return &resp, nil
}

// Update modifica nombre, número de tienda y teléfono. El saldo no se toca.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	customer, err := uc.getCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.ShopNo = in.ShopNo
	customer.Phone = in.PhoneNumber
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina un cliente sin facturas ni pagos (ErrConflict en caso contrario).
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.getCustomer(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Reconcile recalcula el saldo desde facturas y pagos y sobrescribe el almacenado.
// La lectura y la escritura ocurren en la misma transacción, con la fila del cliente bloqueada.
func (uc *CustomerUseCase) Reconcile(ctx context.Context, id string) (*dto.ReconcileResponse, error) {
	var out dto.ReconcileResponse
	err := uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		billRepo repository.BillRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		res, err := reconcileOne(ctx, customerRepo, billRepo, paymentRepo, id)
		if err != nil {
			return err
		}
		out = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Corrected {
		uc.publish(ctx, out)
	}
	return &out, nil
}

// ReconcileAll concilia todos los clientes, cada uno en su propia transacción.
func (uc *CustomerUseCase) ReconcileAll(ctx context.Context) (*dto.ReconcileAllResponse, error) {
	customers, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ReconcileAllResponse{Results: make([]dto.ReconcileResponse, 0, len(customers))}
	for _, c := range customers {
		res, err := uc.Reconcile(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("conciliar cliente %s: %w", c.ID, err)
		}
		out.Checked++
		if res.Corrected {
			out.Corrected++
		}
		out.Results = append(out.Results, *res)
	}
	return out, nil
}

func reconcileOne(
	ctx context.Context,
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	id string,
) (*dto.ReconcileResponse, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	// Bloqueo de fila antes de leer facturas y pagos: un alta concurrente espera a este
	// commit y su bill_amount + delta se aplica sobre el saldo ya conciliado.
	customer, err := customerRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	bills, err := billRepo.List(ctx, repository.BillFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	payments, err := paymentRepo.List(ctx, repository.PaymentFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	totals := ledger.Summarize(bills, payments, ledger.Period{}, nil)
	balance := totals.Balance()
	drift := totals.Drift(customer.BillAmount)

	res := &dto.ReconcileResponse{
		CustomerID:      id,
		PreviousBalance: customer.BillAmount,
		Balance:         balance,
		Drift:           drift,
	}
	if drift.IsZero() {
		return res, nil
	}
	if err := customerRepo.SetBalance(ctx, id, balance); err != nil {
		return nil, err
	}
	res.Corrected = true
	return res, nil
}

func (uc *CustomerUseCase) publish(ctx context.Context, res dto.ReconcileResponse) {
	publishEvent(ctx, uc.events, ports.LedgerEvent{
		Type:       ports.EventBalanceReconciled,
		CustomerID: res.CustomerID,
		Amount:     res.Drift.Neg(),
		Balance:    res.Balance,
	})
}

func (uc *CustomerUseCase) getCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (uc *CustomerUseCase) totalsFor(ctx context.Context, id string) (ledger.Totals, error) {
	bills, err := uc.billRepo.List(ctx, repository.BillFilter{CustomerID: id})
	if err != nil {
		return ledger.Totals{}, err
	}
	payments, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{CustomerID: id})
	if err != nil {
		return ledger.Totals{}, err
	}
	return ledger.Summarize(bills, payments, ledger.Period{}, nil), nil
}

func normalizeCustomer(in dto.CustomerRequest) (dto.CustomerRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ShopNo = strings.TrimSpace(in.ShopNo)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Name == "" {
		return in, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if in.ShopNo == "" {
		return in, fmt.Errorf("%w: número de tienda requerido", domain.ErrInvalidInput)
	}
	if !isPhone(in.PhoneNumber) {
		return in, fmt.Errorf("%w: el teléfono debe tener exactamente %d dígitos", domain.ErrInvalidInput, PhoneDigits)
	}
	return in, nil
}

func isPhone(s string) bool {
	if len(s) != PhoneDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toCustomerResponse(c *entity.Customer, t ledger.Totals) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		ShopNo:        c.ShopNo,
		PhoneNumber:   c.Phone,
		TotalBilled:   t.Billed,
		TotalPaid:     t.Paid,
		Balance:       t.Balance(),
		StoredBalance: c.BillAmount,
		Drift:         t.Drift(c.BillAmount),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
