package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testIssuer     = "pos-api-test"
	testExpDays    = 1
	testCookieName = "pos_session"
)

// fakeUserRepo repo de usuarios en memoria para el gate (solo GetByID importa aquí).
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) ListByRole(role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

func testUser(role string) *entity.User {
	return &entity.User{
		ID:           testUserID,
		Name:         "Usuario Test",
		Email:        "test@pos.local",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - el gate de autenticación (cookie o Bearer + lookup de usuario)
//   - RequireRole para autorizar por la tabla de roles
//   - un handler dummy que devuelve 200 si pasa los middlewares
//
// Registra la misma cadena bajo /api/protected (superficie JSON) y
// /dashboard (superficie browser, responde con redirect).
func buildTestApp(repo *fakeUserRepo, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	gate := apphttp.NewAuthGate(repo, testJWTSecret, testCookieName).Handler()
	okHandler := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":   true,
			"role": apphttp.GetRole(c),
		})
	}
	app.Get("/api/protected", gate, apphttp.RequireRole(allowedRoles...), okHandler)
	app.Get("/dashboard", gate, apphttp.RequireRole(allowedRoles...), okHandler)
	return app
}

// tokenForUser genera un JWT para el usuario de test con el rol indicado.
func tokenForUser(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpDays)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET con el header Authorization opcional.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del gate — tres fallas distinguibles
// ──────────────────────────────────────────────────────────────────────────────

// Sin credencial alguna → 401 en superficie API.
func TestGate_SinCredencial_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("admin")), "admin")
	resp := doRequest(t, app, "/api/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Sin credencial en superficie browser → redirect a /login con mensaje.
func TestGate_SinCredencial_BrowserRedirigeALogin(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("admin")), "admin")
	resp := doRequest(t, app, "/dashboard", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/login?"),
		"debe redirigir a /login con query de mensaje, fue: %s", location)
	assert.Contains(t, location, "type=warning")
}

// Token corrupto → 401 y la cookie de sesión se limpia.
func TestGate_TokenInvalido_Retorna401YLimpiaCookie(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("admin")), "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "token.corrupto.aqui"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// El Set-Cookie de limpieza debe venir con el valor vacío y expirado.
	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, testCookieName+"=")
	assert.Contains(t, setCookie, "expires=")
}

// Token firmado con otro secret → 401 (firma inválida).
func TestGate_FirmaIncorrecta_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("admin")), "admin")
	tok, err := pkgjwt.Generate("otro-secret-distinto", testUserID, "admin", testIssuer, testExpDays)
	require.NoError(t, err)

	resp := doRequest(t, app, "/api/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token válido pero el usuario ya no existe en la BD → 401 (no 403).
func TestGate_UsuarioEliminado_Retorna401(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(), "admin") // repo vacío
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Credencial válida vía cookie de sesión (sin header) → 200.
func TestGate_CookieDeSesion_Acepta(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("staff")), "admin", "manager", "staff")

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: tokenForUser(t, "staff")})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El rol adjunto al contexto sale de la BD, no del claim del token:
// un token con claim manager para un usuario que hoy es staff expone staff.
func TestGate_RolSaleDeLaBD_NoDelClaim(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("staff")), "admin", "manager", "staff")
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "manager"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "staff", body["role"], "el rol debe re-leerse de la BD en cada request")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole — tabla de capacidades
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("admin")), apphttp.AdminOnly...)
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

func TestRequireRole_ManagerAccedeRutaManagerOrAdmin(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("manager")), apphttp.ManagerOrAdmin...)
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "manager"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_StaffBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("staff")), apphttp.AdminOnly...)
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"staff no debe poder acceder a ruta restringida a admin")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_StaffBloqueadoEnRutaManagerOrAdmin(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("staff")), apphttp.ManagerOrAdmin...)
	resp := doRequest(t, app, "/api/protected", "Bearer "+tokenForUser(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Denegación por rol en superficie browser → redirect a /dashboard con mensaje.
func TestRequireRole_BrowserRedirigeADashboard(t *testing.T) {
	app := buildTestApp(newFakeUserRepo(testUser("staff")), apphttp.AdminOnly...)
	resp := doRequest(t, app, "/dashboard", "Bearer "+tokenForUser(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/dashboard?"),
		"debe redirigir a /dashboard con mensaje, fue: %s", location)
	assert.Contains(t, location, "type=error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "manager", testIssuer, testExpDays)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "manager", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Vigencia -1 día: ya expirado.
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpDays)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
