package entity

import "time"

// Estados de Person.
const (
	PersonStatusActive   = "ACTIVE"
	PersonStatusInvited  = "INVITED"
	PersonStatusInactive = "INACTIVE"
)

// Person representa una identidad del sistema. La pertenencia a empresas se
// modela con Membership (histórico); CompanyID es solo un hint denormalizado
// heredado que NUNCA debe sobreescribir silenciosamente una membresía viva:
// se repara únicamente vía la operación explícita refresh-company.
type Person struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt; vacío hasta que el invitado fija su password
	CompanyID    string // hint de empresa "home", puede estar vacío
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword indica si la persona puede autenticarse con password.
func (p *Person) HasPassword() bool {
	return p.PasswordHash != ""
}
