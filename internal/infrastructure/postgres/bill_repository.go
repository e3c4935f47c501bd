package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository: cabecera en bills, detalle en bill_lines.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create inserta cabecera y líneas. Debe llamarse con una tx para que sea atómico.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, customer_id, customer_name, total, date)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, bill.ID, bill.CustomerID, bill.CustomerName, bill.Total, bill.Date); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", bill.CustomerID, domain.ErrNotFound)
		}
		if isInvalidValue(err) {
			return fmt.Errorf("%w: insert bill: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	lineQuery := `
		INSERT INTO bill_lines (id, bill_id, position, item_id, item_name, item_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range bill.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, bill.ID, l.Position, l.ItemID, l.ItemName, l.ItemPrice, l.Quantity, l.Subtotal,
		); err != nil {
			if isInvalidValue(err) {
				return fmt.Errorf("%w: insert bill line %d: %v", domain.ErrInvalidInput, l.Position, err)
			}
			return fmt.Errorf("insert bill line %d: %w", l.Position, err)
		}
	}
	return nil
}

// GetByID obtiene una factura con sus líneas.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `SELECT id, customer_id, customer_name, total, date FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.Total, &b.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidValue(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Bill{&b}); err != nil {
		return nil, err
	}
	return &b, nil
}

// List devuelve las facturas filtradas con sus líneas, por fecha ascendente.
// Las líneas se cargan en una sola consulta para todas las facturas.
func (r *BillRepo) List(ctx context.Context, filter repository.BillFilter) ([]*entity.Bill, error) {
	var w whereBuilder
	if filter.CustomerID != "" {
		w.add("customer_id = $%d", filter.CustomerID)
	}
	w.timeRange("date", filter.From, filter.To)

	query := `SELECT id, customer_id, customer_name, total, date FROM bills` + w.sql() + ` ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.Total, &b.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BillRepo) attachLines(ctx context.Context, bills []*entity.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	ids := make([]string, len(bills))
	byID := make(map[string]*entity.Bill, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
		byID[b.ID] = b
	}
	query := `
		SELECT id, bill_id, position, item_id, item_name, item_price, quantity, subtotal
		FROM bill_lines WHERE bill_id = ANY($1::uuid[])
		ORDER BY bill_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list bill lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.BillLine
		if err := rows.Scan(&l.ID, &l.BillID, &l.Position, &l.ItemID, &l.ItemName, &l.ItemPrice, &l.Quantity, &l.Subtotal); err != nil {
			return fmt.Errorf("scan bill line: %w", err)
		}
		if b := byID[l.BillID]; b != nil {
			b.Lines = append(b.Lines, l)
		}
	}
	return rows.Err()
}
