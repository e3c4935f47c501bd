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

// PaymentUseCase cobros: saldo pendiente, registro de pagos y listados.
type PaymentUseCase struct {
	txRunner     LedgerTxRunner
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	paymentRepo  repository.PaymentRepository
	events       ports.EventPublisher
	loc          *time.Location
	now          func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner LedgerTxRunner,
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	events ports.EventPublisher,
	loc *time.Location,
) *PaymentUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &PaymentUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		events:       events,
		loc:          loc,
		now:          time.Now,
	}
}

// Due devuelve facturado - pagado del cliente (derivado, no el saldo almacenado).
func (uc *PaymentUseCase) Due(ctx context.Context, customerID string) (*dto.BillDueResponse, error) {
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
	bills, err := uc.billRepo.List(ctx, repository.BillFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	t := ledger.Summarize(bills, payments, ledger.Period{}, nil)
	return &dto.BillDueResponse{
		CustomerID:  customerID,
		TotalBilled: t.Billed,
		TotalPaid:   t.Paid,
		BillDue:     t.Balance(),
	}, nil
}

// Accept registra un pago y lo descuenta del saldo en la misma transacción.
// Se admite pagar de más: el saldo queda negativo (a favor del cliente).
func (uc *PaymentUseCase) Accept(ctx context.Context, in dto.AcceptPaymentRequest) (*dto.AcceptPaymentResponse, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if err := ledger.ValidatePaymentAmount(in.AmountReceived); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
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

	payment := &entity.Payment{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Amount:     in.AmountReceived,
		ReceivedAt: uc.now(),
	}
	var balance decimal.Decimal
	err = uc.txRunner.RunLedger(ctx, func(
		customerRepo repository.CustomerRepository,
		_ repository.BillRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		balance, err = customerRepo.AdjustBalance(ctx, payment.CustomerID, payment.Amount.Neg())
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.events, ports.LedgerEvent{
		Type:        ports.EventPaymentAccepted,
		CustomerID:  payment.CustomerID,
		ReferenceID: payment.ID,
		Amount:      payment.Amount,
		Balance:     balance,
	})

	return &dto.AcceptPaymentResponse{
		Payment:         toPaymentResponse(payment),
		CustomerBalance: balance,
	}, nil
}

// List filtra pagos por cliente y periodo y devuelve el total filtrado.
func (uc *PaymentUseCase) List(ctx context.Context, in dto.PaymentFilterRequest) (*dto.PaymentListResponse, error) {
	period, err := ledger.NewPeriod(in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.CustomerID != "" && !domain.ValidID(in.CustomerID) {
		return nil, fmt.Errorf("%w: customer_id inválido", domain.ErrInvalidInput)
	}
	filter := repository.PaymentFilter{CustomerID: in.CustomerID}
	if from, to, ok := period.Bounds(uc.loc); ok {
		filter.From, filter.To = from, to
	}
	payments, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments = ledger.FilterPayments(payments, in.CustomerID, period, uc.loc)

	out := &dto.PaymentListResponse{
		Payments: make([]dto.PaymentResponse, 0, len(payments)),
		Total:    decimal.Zero,
		Period:   period.Label(),
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, toPaymentResponse(p))
		out.Total = out.Total.Add(p.Amount)
	}
	out.Count = len(out.Payments)
	return out, nil
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		AmountReceived: p.Amount,
		ReceivedAt:     p.ReceivedAt,
	}
}
