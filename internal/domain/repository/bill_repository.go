package repository

import (
	"context"
	"time"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// BillFilter filtros de listado. Campos vacíos no filtran; To es exclusivo.
type BillFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
}

// BillRepository define el puerto de persistencia para facturas y sus líneas.
type BillRepository interface {
	// Create persiste cabecera y líneas. Debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	// List devuelve las facturas con sus líneas, ordenadas por fecha ascendente.
	List(ctx context.Context, filter BillFilter) ([]*entity.Bill, error)
}
