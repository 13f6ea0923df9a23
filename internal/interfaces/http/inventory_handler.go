package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
)

// InventoryHandler maneja el libro de stock autoritativo.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Upsert godoc
// @Summary      Fijar la cantidad autoritativa de un producto (alta o corrección)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertInventoryRequest  true  "product, quantity >= 0"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.Upsert(c.Context(), GetUser(c), c.IP(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(record)
}

// List godoc
// @Summary      Listar el libro de stock
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Registro de stock de un producto (ausente = cero)
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockRecordResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	record, err := h.uc.GetByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(record)
}

// Delete godoc
// @Summary      Eliminar el registro de stock de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/inventory/{productId} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), GetUser(c), c.IP(), c.Params("productId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "registro de inventario eliminado"})
}
