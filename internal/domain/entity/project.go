package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Project.
const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusPaused   = "PAUSED"
	ProjectStatusFinished = "FINISHED"
)

// Project es una obra/proyecto de construcción perteneciente a una Company.
// Toda consulta sobre proyectos filtra por CompanyID (aislamiento tenant).
type Project struct {
	ID         string
	CompanyID  string
	Name       string
	Status     string
	HourlyRate decimal.Decimal // tarifa horaria base de la obra
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
