package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/pkg/slug"
)

// Propagación del contexto tenant hacia handlers y peticiones siguientes.
const (
	HeaderTenantID  = "x-tenant-id"
	CookieTenant    = "tenant"
	LocalTenantSlug = "tenant_slug"
)

// reservedPrefixes segmentos de path que nunca son un slug de tenant.
var reservedPrefixes = map[string]struct{}{
	"api":    {},
	"docs":   {},
	"health": {},
	"static": {},
}

// TenantLocator corre en TODAS las peticiones, antes de cualquier handler.
// Derivación pura, primer match gana:
//
//  1. Primer segmento no vacío del path, salvo que sea un prefijo reservado.
//  2. Query param `tenant`.
//
// El resultado se propaga en un local, el header de respuesta x-tenant-id y la
// cookie `tenant` (httpOnly, secure, sameSite=lax) para que handlers y
// peticiones posteriores recuperen el contexto sin re-derivarlo. Si no se
// deriva nada, no se anota: los consumidores operan solo sobre la empresa del
// principal.
func TenantLocator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantSlug := locateTenant(c.Path(), c.Query("tenant"))
		if tenantSlug != "" {
			c.Locals(LocalTenantSlug, tenantSlug)
			c.Set(HeaderTenantID, tenantSlug)
			c.Cookie(&fiber.Cookie{
				Name:     CookieTenant,
				Value:    tenantSlug,
				HTTPOnly: true,
				Secure:   true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return c.Next()
	}
}

// locateTenant aplica la precedencia path > query sobre valores ya extraídos.
func locateTenant(path, queryTenant string) string {
	segment := firstSegment(path)
	if segment != "" {
		if _, reserved := reservedPrefixes[segment]; !reserved && slug.IsValid(segment) {
			return segment
		}
	}
	if slug.IsValid(queryTenant) {
		return queryTenant
	}
	return ""
}

// firstSegment devuelve el primer segmento no vacío del path ("/acme/x" -> "acme").
func firstSegment(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			return segment
		}
	}
	return ""
}

// GetTenantSlug devuelve el slug derivado por TenantLocator o "" si la
// petición no trae contexto tenant.
func GetTenantSlug(c *fiber.Ctx) string {
	v := c.Locals(LocalTenantSlug)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
