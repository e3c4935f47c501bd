// Package catalog casos de uso del menú de ítems.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems del menú.
// Editar o borrar un ítem no altera facturas ya emitidas (las líneas guardan copia).
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un nuevo ítem.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in, err := validateItem(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List devuelve el menú ordenado por nombre.
func (uc *ItemUseCase) List(ctx context.Context) ([]*dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update cambia nombre y precio. Las facturas existentes conservan el precio anterior.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in, err := validateItem(in)
	if err != nil {
		return nil, err
	}
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Price = in.Price
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un ítem del menú.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) get(ctx context.Context, id string) (*entity.Item, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func validateItem(in dto.ItemRequest) (dto.ItemRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if err := ledger.ValidatePrice(in.Price); err != nil {
		return in, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return in, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Price:     it.Price,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
