package entity

import "time"

// Estados de Company (tenant).
const (
	CompanyStatusActive    = "ACTIVE"
	CompanyStatusInactive  = "INACTIVE"
	CompanyStatusSuspended = "SUSPENDED"
	CompanyStatusTrial     = "TRIAL"
)

// Company representa una organización/tenant del sistema. El slug es el
// identificador URL-safe con el que el Tenant Locator resuelve el contexto
// desde el path o el query param.
type Company struct {
	ID            string
	Name          string
	NameLocalized string // variante localizada del nombre (ej. razón social en español)
	Slug          string // único
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanOperate indica si la empresa admite sesiones: TRIAL y ACTIVE operan,
// SUSPENDED e INACTIVE no.
func (c *Company) CanOperate() bool {
	return c.Status == CompanyStatusActive || c.Status == CompanyStatusTrial
}
