package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/analytics"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes: alta, saldos, historial y estado de cuenta.
type CustomerHandler struct {
	uc        *billing.CustomerUseCase
	bills     *billing.BillUseCase
	payments  *billing.PaymentUseCase
	history   *analytics.HistoryUseCase
	statement *billing.StatementUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(
	uc *billing.CustomerUseCase,
	bills *billing.BillUseCase,
	payments *billing.PaymentUseCase,
	history *analytics.HistoryUseCase,
	statement *billing.StatementUseCase,
) *CustomerHandler {
	return &CustomerHandler{uc: uc, bills: bills, payments: payments, history: history, statement: statement}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerRequest  true  "name, shop_no, phone_number (10 dígitos)"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Listar clientes con saldo
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c, "limit y offset deben ser enteros")
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente con saldo
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "name, shop_no, phone_number"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  409 si tiene facturas o pagos.
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Due godoc
// @Summary      Saldo pendiente del cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.BillDueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/due [get]
func (h *CustomerHandler) Due(c *fiber.Ctx) error {
	out, err := h.payments.Due(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar saldo de un cliente
// @Description  Recalcula facturado - pagado y sobrescribe el saldo almacenado si difiere.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/reconcile [post]
func (h *CustomerHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReconcileAll godoc
// @Summary      Conciliar saldo de todos los clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ReconcileAllResponse
// @Router       /api/customers/reconcile [post]
func (h *CustomerHandler) ReconcileAll(c *fiber.Ctx) error {
	out, err := h.uc.ReconcileAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de facturas y pagos del cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "ID del cliente"
// @Param        year   query  int     false  "año"
// @Param        month  query  int     false  "mes 1-12"
// @Success      200  {object}  dto.CustomerHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/history [get]
func (h *CustomerHandler) History(c *fiber.Ctx) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	out, err := h.history.CustomerHistory(c.Context(), c.Params("id"), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BillLines godoc
// @Summary      Líneas facturadas al cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "ID del cliente"
// @Param        year   query  int     false  "año"
// @Param        month  query  int     false  "mes 1-12"
// @Success      200  {array}   dto.HistoryEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/bill-lines [get]
func (h *CustomerHandler) BillLines(c *fiber.Ctx) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	out, err := h.bills.Lines(c.Context(), c.Params("id"), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         customers
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id     path   string  true   "ID del cliente"
// @Param        year   query  int     false  "año"
// @Param        month  query  int     false  "mes 1-12"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement.pdf [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return badQuery(c, err.Error())
	}
	pdfBytes, filename, err := h.statement.Download(c.Context(), c.Params("id"), period)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
