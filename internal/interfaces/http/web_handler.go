package http

import (
	"github.com/gofiber/fiber/v2"
)

// WebHandler rutas mínimas de browser. Las vistas renderizadas viven en el
// frontend; aquí solo existe la superficie necesaria para la semántica de
// redirect del gate (login como destino público, dashboard como ruta protegida).
type WebHandler struct{}

// NewWebHandler construye el handler web.
func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

// Login página pública de inicio de sesión. Recibe message/type como query
// cuando el gate redirige una sesión inválida o ausente.
func (h *WebHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "login",
		"message": c.Query("message"),
		"type":    c.Query("type"),
	})
}

// Dashboard ruta protegida de browser; el gate redirige aquí tras denegar por rol.
func (h *WebHandler) Dashboard(c *fiber.Ctx) error {
	user := GetUser(c)
	return c.JSON(fiber.Map{
		"page":    "dashboard",
		"user":    user.Name,
		"role":    user.Role,
		"message": c.Query("message"),
		"type":    c.Query("type"),
	})
}
