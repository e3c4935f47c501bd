package postgres

import (
	"context"
	"fmt"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (tabla accepted_payments).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago recibido.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO accepted_payments (id, customer_id, amount, received_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.CustomerID, p.Amount, p.ReceivedAt); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", p.CustomerID, domain.ErrNotFound)
		}
		if isInvalidValue(err) {
			return fmt.Errorf("%w: insert payment: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// List devuelve los pagos filtrados, por fecha ascendente.
func (r *PaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	var w whereBuilder
	if filter.CustomerID != "" {
		w.add("customer_id = $%d", filter.CustomerID)
	}
	w.timeRange("received_at", filter.From, filter.To)

	query := `SELECT id, customer_id, amount, received_at FROM accepted_payments` + w.sql() + ` ORDER BY received_at, id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
