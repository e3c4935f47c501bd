package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
)

// BillHandler maneja las peticiones HTTP de facturas.
type BillHandler struct {
	uc *billing.BillUseCase
}

// NewBillHandler construye el handler de facturas.
func NewBillHandler(uc *billing.BillUseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura
// @Description  Toma precio y nombre actuales de cada ítem y suma el total al saldo del cliente en la misma transacción.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBillRequest  true  "customer_id, lines[item_id, quantity]"
// @Success      201   {object}  dto.CreateBillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "customer_id y al menos una línea son requeridos",
		})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        year         query  int     false  "año"
// @Param        month        query  int     false  "mes 1-12"
// @Success      200  {object}  dto.BillListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	var in dto.BillFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c, "year y month deben ser enteros")
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Today godoc
// @Summary      Facturas de hoy
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BillListResponse
// @Router       /api/bills/today [get]
func (h *BillHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
