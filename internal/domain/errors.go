package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Política de propagación: los "no encontrado" esperados se devuelven como
// (nil, nil) desde los repositorios; estos sentinels marcan fallos de reglas
// de negocio. Solo los fallos de infraestructura se envuelven con %w.
var (
	// ErrInvalidCredentials combinación email/password incorrecta. El mensaje
	// es genérico a propósito: no se distingue "usuario no existe" de
	// "password incorrecto" para no permitir enumeración de cuentas.
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// ErrNoTenantContext usuario autenticado pero sin membresía ACTIVA vigente
	// ni reconciliación posible.
	ErrNoTenantContext = errors.New("sin contexto de empresa")

	// ErrUnavailable el almacén de datos no responde; distinto de un fallo de
	// credenciales, es seguro reintentar.
	ErrUnavailable = errors.New("servicio no disponible")

	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidToken       = errors.New("token de invitación inválido o vencido")
)
