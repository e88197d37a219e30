package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/pkg/jwt"
)

// Local key para el principal decodificado en Fiber.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token JWT y deja el principal decodificado
// en c.Locals. No toca la DB: los claims del token son la fuente para la
// autorización de la petición (las rutas que necesiten estado vivo deben
// re-verificar contra la tabla de membresías explícitamente).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		principal, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (después de AuthMiddleware)
// o nil si no hay sesión.
func GetPrincipal(c *fiber.Ctx) *jwt.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*jwt.Principal)
	return p
}

// RequireRole autoriza la petición solo si el rol del principal está en el
// conjunto permitido. El conjunto es explícito por ruta: NO hay jerarquía
// implícita (ADMIN no pasa una ruta que solo permite SUPERVISOR).
//
//   - 401 si no hay principal o el token no trae rol.
//   - 403 si el rol no está permitido, sin revelar cuál se requería.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if principal.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, role := range allowedRoles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no autorizado"})
	}
}
