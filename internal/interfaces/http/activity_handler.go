package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// ActivityHandler expone el registro de actividad para vistas de reporte.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler de actividad.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// ListRecent godoc
// @Summary      Actividad reciente (solo admin)
// @Tags         activity
// @Produce      json
// @Param        limit  query  int  false  "límite (default 50, max 200)"
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) ListRecent(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent(c.QueryInt("limit", 50))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
