// Package pdf implementa la generación del reporte de jornadas (timesheet)
// de una empresa usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + período                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Trabajador | Obra | Horas | Tarifa | Valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Horas acumuladas / Valor total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraTrack-api/internal/application/report"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoTimesheetGenerator implementa report.TimesheetPDFGenerator usando Maroto v2.
type MarotoTimesheetGenerator struct{}

// NewMarotoTimesheetGenerator construye el generador.
func NewMarotoTimesheetGenerator() *MarotoTimesheetGenerator { return &MarotoTimesheetGenerator{} }

// GenerateTimesheetPDF genera el PDF y devuelve sus bytes.
func (g *MarotoTimesheetGenerator) GenerateTimesheetPDF(
	_ context.Context,
	company *entity.Company,
	from, to time.Time,
	rows []report.TimesheetRow,
	totalHours, totalAmount decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de jornadas", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totalHours, totalAmount))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y período (der).
func headerRow(company *entity.Company, from, to time.Time) core.Row {
	name := company.Name
	if company.NameLocalized != "" {
		name = company.NameLocalized
	}
	period := from.Format("02/01/2006") + " — " + to.Format("02/01/2006")

	return row.New(14).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de jornadas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(period, props.Text{
				Size: 10, Top: 4, Align: align.Right,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(a align.Type) props.Text {
		return props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: a, Top: 1}
	}
	return row.New(7).Add(
		col.New(2).Add(text.New("Fecha", header(align.Left))),
		col.New(3).Add(text.New("Trabajador", header(align.Left))),
		col.New(3).Add(text.New("Obra", header(align.Left))),
		col.New(1).Add(text.New("Horas", header(align.Right))),
		col.New(1).Add(text.New("Tarifa", header(align.Right))),
		col.New(2).Add(text.New("Valor", header(align.Right))),
	)
}

func detailRow(r report.TimesheetRow) core.Row {
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1}
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.Date.Format("02/01/2006"), cell(align.Left))),
		col.New(3).Add(text.New(r.PersonName, cell(align.Left))),
		col.New(3).Add(text.New(r.ProjectName, cell(align.Left))),
		col.New(1).Add(text.New(r.Hours.StringFixed(2), cell(align.Right))),
		col.New(1).Add(text.New(r.HourlyRate.StringFixed(2), cell(align.Right))),
		col.New(2).Add(text.New(r.Amount.StringFixed(2), cell(align.Right))),
	)
}

func totalsRow(totalHours, totalAmount decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Horas: "+totalHours.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New("Total: "+totalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
