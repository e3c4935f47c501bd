package repository

import (
	"context"
	"time"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// PaymentFilter filtros de listado. Campos vacíos no filtran; To es exclusivo.
type PaymentFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
}

// PaymentRepository define el puerto de persistencia para pagos recibidos.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// List devuelve los pagos ordenados por fecha ascendente.
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
}
