package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const localLogger = "request_logger"

// AttachLogger middleware que hace el logger accesible a los handlers vía Locals.
func AttachLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localLogger, log)
		return c.Next()
	}
}

// internalError responde 500 con mensaje genérico. El detalle del error nunca
// llega al cliente: va solo al log estructurado.
func internalError(c *fiber.Ctx, err error) error {
	if v := c.Locals(localLogger); v != nil {
		if log, ok := v.(*logger.Logger); ok {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
