package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// TimesheetRow fila ya resuelta (nombres en lugar de ids) para el PDF.
type TimesheetRow struct {
	Date        time.Time
	PersonName  string
	ProjectName string
	Hours       decimal.Decimal
	HourlyRate  decimal.Decimal
	Amount      decimal.Decimal
	Status      string
}

// TimesheetPDFGenerator puerto de generación del PDF; la implementación
// (Maroto) vive en infrastructure.
type TimesheetPDFGenerator interface {
	GenerateTimesheetPDF(ctx context.Context, company *entity.Company, from, to time.Time, rows []TimesheetRow, totalHours, totalAmount decimal.Decimal) ([]byte, error)
}
