package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Niveles de operación con su tabla explícita de roles permitidos.
// El autorizador corre siempre después del gate y nunca toca la BD:
// decide solo con el rol ya adjunto al contexto.
var (
	AdminOnly        = []string{entity.RoleAdmin}
	ManagerOrAdmin   = []string{entity.RoleAdmin, entity.RoleManager}
	AnyAuthenticated = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleStaff}
)

// RequireRole autoriza el request si el rol del contexto está en allowed.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}
		if isAPIRequest(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "No tienes permisos para esta operación",
			})
		}
		return c.Redirect("/dashboard?message=" + escapeQuery("No tienes permisos para esta operación") + "&type=error")
	}
}
