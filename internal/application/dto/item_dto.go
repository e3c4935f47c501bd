package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest body para POST /api/items y PUT /api/items/:id.
type ItemRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ItemResponse ítem del menú en respuestas.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
