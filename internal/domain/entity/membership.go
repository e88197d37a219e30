package entity

import "time"

// Roles válidos dentro de una empresa.
const (
	RoleWorker     = "WORKER"
	RoleSupervisor = "SUPERVISOR"
	RoleAdmin      = "ADMIN"
	RoleSuperuser  = "SUPERUSER"
)

// Estados de Membership.
const (
	MembershipStatusActive   = "ACTIVE"
	MembershipStatusInactive = "INACTIVE"
)

// ValidRole verifica que el rol pertenezca al conjunto conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleWorker, RoleSupervisor, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// Membership vincula una Person con una Company en una ventana temporal, con
// un rol. Una persona acumula membresías históricas (pueden coexistir varias
// ACTIVAS, ej. contratista en dos firmas); el sistema proyecta siempre UNA
// sola como "vigente" (ver membership.Resolver). Las membresías no se borran:
// se cierran con EndDate.
type Membership struct {
	ID        string
	PersonID  string
	CompanyID string
	Role      string
	Status    string
	StartDate time.Time
	EndDate   *time.Time // nil = sin cierre
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la membresía cuenta como vigente para resolución.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
