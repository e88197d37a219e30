package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PersonResponse salida de una persona (sin password hash).
type PersonResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"company_id"`
	CompanySlug string    `json:"company_slug"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// LoginResponse salida con token JWT firmado y el principal resuelto.
type LoginResponse struct {
	Token string         `json:"token"`
	User  PersonResponse `json:"user"`
}

// SetPasswordRequest entrada para fijar password desde una invitación.
type SetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// InviteRequest entrada para invitar a una persona a la empresa del caller.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=200"`
	Role  string `json:"role" validate:"required,oneof=WORKER SUPERVISOR ADMIN SUPERUSER"`
}

// InviteResponse salida de una invitación creada. El token viaja aquí solo
// porque la entrega por email es un colaborador externo a este servicio.
type InviteResponse struct {
	InvitationID string    `json:"invitation_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// CompanyRef referencia mínima a una empresa (respuesta de refresh-company).
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RefreshCompanyResponse salida de la reconciliación de membresía.
type RefreshCompanyResponse struct {
	Success bool       `json:"success"`
	Company CompanyRef `json:"company"`
}
