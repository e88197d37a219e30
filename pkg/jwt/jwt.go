package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal es el valor derivado {identidad, rol, tenant} que viaja dentro del
// token de sesión. Se reconstruye en cada login y NUNCA se persiste.
type Principal struct {
	UserID      string
	Name        string
	Email       string
	Role        string // WORKER | SUPERVISOR | ADMIN | SUPERUSER
	CompanyID   string
	CompanySlug string
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// role, company_id y company_slug van embebidos para que el middleware pueda
// autorizar sin consultar la DB en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyID   string `json:"company_id"`
	CompanySlug string `json:"company_slug"`
}

// Generate firma un token HS256 con el principal completo.
// La firma requiere un contexto de ejecución con soporte criptográfico; este
// paquete solo debe invocarse desde el proceso del API, nunca desde un worker
// restringido.
func Generate(secret string, p Principal, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Name:        p.Name,
		Email:       p.Email,
		Role:        p.Role,
		CompanyID:   p.CompanyID,
		CompanySlug: p.CompanySlug,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el principal embebido, sin ir a la DB.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Principal, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Principal{
		UserID:      claims.Subject,
		Name:        claims.Name,
		Email:       claims.Email,
		Role:        claims.Role,
		CompanyID:   claims.CompanyID,
		CompanySlug: claims.CompanySlug,
	}, nil
}
