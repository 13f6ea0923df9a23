package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUser   = "current_user"
	LocalUserID = "user_id"
	LocalRole   = "user_role"
)

// AuthGate valida la credencial (cookie o Bearer) y adjunta la identidad a c.Locals.
// Cada request re-verifica el token y re-lee el usuario de la BD: un usuario
// eliminado pierde acceso de inmediato aunque su token siga vigente.
type AuthGate struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	cookieName string
}

// NewAuthGate construye el middleware de autenticación.
func NewAuthGate(userRepo repository.UserRepository, jwtSecret, cookieName string) *AuthGate {
	return &AuthGate{userRepo: userRepo, jwtSecret: jwtSecret, cookieName: cookieName}
}

// Handler devuelve el fiber.Handler del gate. Tres fallas distinguibles:
// sin credencial, credencial inválida (limpia la cookie) y usuario inexistente.
func (g *AuthGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := g.extractToken(c)
		if tokenString == "" {
			return rejectUnauthenticated(c, "Debes iniciar sesión para continuar", "warning")
		}

		userID, _, err := jwt.Parse(g.jwtSecret, tokenString)
		if err != nil {
			// Token corrupto o expirado: limpiar la cookie para que el browser
			// no lo re-envíe en cada request.
			g.clearCookie(c)
			return rejectUnauthenticated(c, "Sesión inválida o expirada, inicia sesión de nuevo", "error")
		}

		user, err := g.userRepo.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
		}
		if user == nil {
			return rejectUnauthenticated(c, "La cuenta ya no existe", "error")
		}

		// La identidad adjunta nunca incluye el hash del password.
		identity := *user
		identity.PasswordHash = ""
		c.Locals(LocalUser, &identity)
		c.Locals(LocalUserID, identity.ID)
		c.Locals(LocalRole, identity.Role)
		return c.Next()
	}
}

// extractToken lee la credencial: cookie de sesión primero, luego Authorization Bearer.
func (g *AuthGate) extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(g.cookieName); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (g *AuthGate) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// rejectUnauthenticated responde según la superficie: JSON 401 para /api/,
// redirect con mensaje para rutas de browser.
func rejectUnauthenticated(c *fiber.Ctx, message, msgType string) error {
	if isAPIRequest(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: message})
	}
	return c.Redirect("/login?message=" + escapeQuery(message) + "&type=" + msgType)
}

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}

// GetUser devuelve la identidad autenticada del contexto (después del gate).
func GetUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// GetUserID devuelve el UserID del contexto (después del gate).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del gate).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
