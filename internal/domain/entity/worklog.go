package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de WorkLog.
const (
	WorkLogStatusOpen     = "OPEN"     // jornada iniciada, sin clock-out
	WorkLogStatusClosed   = "CLOSED"   // jornada cerrada, pendiente de aprobación
	WorkLogStatusApproved = "APPROVED" // aprobada por un supervisor
)

// WorkLog es una jornada de trabajo de una persona en un proyecto.
type WorkLog struct {
	ID         string
	CompanyID  string
	ProjectID  string
	PersonID   string
	ClockIn    time.Time
	ClockOut   *time.Time
	Hours      decimal.Decimal // calculadas al clock-out, 2 decimales
	HourlyRate decimal.Decimal // copiada del proyecto al clock-in
	Status     string
	ApprovedBy string // person_id del supervisor, vacío hasta aprobar
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Amount devuelve el valor de la jornada (horas * tarifa).
func (w *WorkLog) Amount() decimal.Decimal {
	return w.Hours.Mul(w.HourlyRate)
}

// WorkSummary agregados de jornadas para el dashboard de una empresa.
type WorkSummary struct {
	TotalHours      decimal.Decimal
	OpenLogs        int
	PendingApproval int
}
