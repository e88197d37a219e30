// Package report arma el reporte de jornadas (timesheet) de una empresa en un
// período y lo exporta como PDF.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

// TimesheetUseCase orquesta la consulta de jornadas y la generación del PDF.
type TimesheetUseCase struct {
	worklogRepo repository.WorkLogRepository
	projectRepo repository.ProjectRepository
	personRepo  repository.PersonRepository
	companyRepo repository.CompanyRepository
	generator   TimesheetPDFGenerator
}

// NewTimesheetUseCase construye el caso de uso.
func NewTimesheetUseCase(
	worklogRepo repository.WorkLogRepository,
	projectRepo repository.ProjectRepository,
	personRepo repository.PersonRepository,
	companyRepo repository.CompanyRepository,
	generator TimesheetPDFGenerator,
) *TimesheetUseCase {
	return &TimesheetUseCase{
		worklogRepo: worklogRepo,
		projectRepo: projectRepo,
		personRepo:  personRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// Generate produce el PDF del período [from, to] para la empresa del principal.
func (uc *TimesheetUseCase) Generate(ctx context.Context, companyID string, from, to time.Time) ([]byte, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	logs, err := uc.worklogRepo.ListByPeriod(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	projectNames := map[string]string{}
	personNames := map[string]string{}
	rows := make([]TimesheetRow, 0, len(logs))
	totalHours := decimal.Zero
	totalAmount := decimal.Zero
	for _, w := range logs {
		pname, ok := projectNames[w.ProjectID]
		if !ok {
			project, err := uc.projectRepo.GetByID(ctx, companyID, w.ProjectID)
			if err != nil {
				return nil, err
			}
			if project != nil {
				pname = project.Name
			}
			projectNames[w.ProjectID] = pname
		}
		wname, ok := personNames[w.PersonID]
		if !ok {
			person, err := uc.personRepo.GetByID(ctx, w.PersonID)
			if err != nil {
				return nil, err
			}
			if person != nil {
				wname = person.Name
			}
			personNames[w.PersonID] = wname
		}
		amount := w.Amount()
		rows = append(rows, TimesheetRow{
			Date:        w.ClockIn,
			PersonName:  wname,
			ProjectName: pname,
			Hours:       w.Hours,
			HourlyRate:  w.HourlyRate,
			Amount:      amount,
			Status:      w.Status,
		})
		totalHours = totalHours.Add(w.Hours)
		totalAmount = totalAmount.Add(amount)
	}

	return uc.generator.GenerateTimesheetPDF(ctx, company, from, to, rows, totalHours, totalAmount)
}
