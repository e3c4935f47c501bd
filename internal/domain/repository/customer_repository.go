package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y GetByIDForUpdate devuelven (nil, nil) si no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetByIDForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción
	// (SELECT ... FOR UPDATE). Fuera de transacción equivale a GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	// ListAll devuelve todos los clientes ordenados por nombre, sin paginar.
	ListAll(ctx context.Context) ([]*entity.Customer, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete devuelve domain.ErrConflict si hay facturas o pagos del cliente.
	Delete(ctx context.Context, id string) error

	// AdjustBalance suma delta al saldo almacenado de forma atómica y devuelve el saldo resultante.
	// Devuelve domain.ErrNotFound si el cliente no existe.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// SetBalance sobrescribe el saldo almacenado (conciliación).
	SetBalance(ctx context.Context, id string, balance decimal.Decimal) error
}
