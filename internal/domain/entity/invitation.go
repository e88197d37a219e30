package entity

import "time"

// Invitation respalda el flujo de alta: un ADMIN invita a una persona a su
// empresa y el invitado fija su password presentando el token. El token se
// verifica SIEMPRE contra esta fila (email coincidente, no usado, no vencido)
// y se consume al usarse.
type Invitation struct {
	ID        string
	CompanyID string
	Email     string
	Token     string
	Role      string
	ExpiresAt time.Time
	UsedAt    *time.Time // nil = pendiente
	CreatedAt time.Time
}

// Usable indica si la invitación puede canjearse en el instante now.
func (i *Invitation) Usable(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
