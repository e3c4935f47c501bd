package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/analytics"
)

// HistoryHandler totales mensuales por cliente.
type HistoryHandler struct {
	uc *analytics.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *analytics.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Monthly godoc
// @Summary      Historial mensual
// @Description  Mes sin año filtra ese mes en todos los años.
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        year         query  int     false  "año"
// @Param        month        query  int     false  "mes 1-12"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Success      200  {object}  dto.MonthlyHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history/monthly [get]
func (h *HistoryHandler) Monthly(c *fiber.Ctx) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	out, err := h.uc.MonthlyTotals(c.Context(), period, c.Query("customer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
