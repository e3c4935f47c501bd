package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/ports"
)

// publishEvent completa ID y fecha y publica. Los errores solo se registran:
// la escritura ya está confirmada.
func publishEvent(ctx context.Context, pub ports.EventPublisher, ev ports.LedgerEvent) {
	if pub == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("event", ev.Type).
			Str("customer_id", ev.CustomerID).
			Str("reference_id", ev.ReferenceID).
			Msg("no se pudo publicar evento del libro")
	}
}
