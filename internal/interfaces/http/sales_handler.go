package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
)

// SalesHandler maneja el checkout y las consultas de ventas.
type SalesHandler struct {
	createUC  *sales.CreateSaleUseCase
	queryUC   *sales.QueryUseCase
	statusUC  *sales.StatusUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.QueryUseCase, statusUC *sales.StatusUseCase, receiptUC *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{createUC: createUC, queryUC: queryUC, statusUC: statusUC, receiptUC: receiptUC}
}

// Create godoc
// @Summary      Checkout: crear venta descontando stock atómicamente
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, customer, tax, discount, paymentMethod"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.createUC.CreateSale(c.Context(), GetUser(c), c.IP(), in)
	if err != nil {
		var notFound *sales.ProductNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: notFound.Error()})
		}
		var insufficient *sales.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "número de venta duplicado, reintenta"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{
		Success: true,
		Message: "venta registrada",
		Sale:    sale,
	})
}

// List godoc
// @Summary      Listar ventas con paginación y filtros
// @Tags         sales
// @Produce      json
// @Param        page       query  int     false  "página (default 1)"
// @Param        limit      query  int     false  "tamaño (default 10)"
// @Param        startDate  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        endDate    query  string  false  "fecha final YYYY-MM-DD"
// @Param        status     query  string  false  "completed|pending|cancelled"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	in := sales.ListInput{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Status: c.Query("status"),
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "startDate inválido, formato YYYY-MM-DD"})
		}
		in.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "endDate inválido, formato YYYY-MM-DD"})
		}
		// endDate es inclusivo para el cliente; el rango interno es [start, end).
		t = t.AddDate(0, 0, 1)
		in.EndDate = &t
	}
	out, err := h.queryUC.List(c.Context(), in)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.GetSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId} [get]
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	sale, err := h.queryUC.Get(c.Context(), c.Params("saleId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.GetSaleResponse{Success: true, Sale: sale})
}

// Today godoc
// @Summary      Ventas completadas y pagadas de hoy con totales
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.TodaySalesResponse
// @Router       /api/sales/today [get]
func (h *SalesHandler) Today(c *fiber.Ctx) error {
	out, err := h.queryUC.Today(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas por período (day|week|month|year)
// @Tags         sales
// @Produce      json
// @Param        period  query  string  false  "período (default day)"
// @Success      200  {object}  dto.SalesStatsResponse
// @Router       /api/sales/stats [get]
func (h *SalesHandler) Stats(c *fiber.Ctx) error {
	out, err := h.queryUC.Stats(c.Context(), c.Query("period", "day"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period inválido: day, week, month o year"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar estado y/o estado de pago de una venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        saleId  path  string                      true  "ID de la venta"
// @Param        body    body  dto.UpdateSaleStatusRequest true  "status y/o paymentStatus"
// @Success      200  {object}  dto.GetSaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId}/status [patch]
func (h *SalesHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.statusUC.UpdateStatus(c.Context(), GetUser(c), c.IP(), c.Params("saleId"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status o paymentStatus fuera de la enumeración"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.GetSaleResponse{Success: true, Sale: sale})
}

// Receipt godoc
// @Summary      Recibo de la venta en PDF
// @Tags         sales
// @Produce      application/pdf
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receiptUC.GetReceipt(c.Context(), c.Params("saleId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}

// parseDate acepta YYYY-MM-DD o RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
