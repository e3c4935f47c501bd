package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
)

// PaymentHandler pagos recibidos.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Accept godoc
// @Summary      Registrar pago recibido
// @Description  Se permite sobrepago: el saldo queda negativo (crédito a favor del cliente).
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AcceptPaymentRequest  true  "customer_id, amount_received"
// @Success      201   {object}  dto.AcceptPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Accept(c *fiber.Ctx) error {
	var in dto.AcceptPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Accept(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pagos
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        year         query  int     false  "año"
// @Param        month        query  int     false  "mes 1-12"
// @Success      200  {object}  dto.PaymentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var in dto.PaymentFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c, "year y month deben ser enteros")
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
