package repository

import (
	"context"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para los ítems del menú.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
}
