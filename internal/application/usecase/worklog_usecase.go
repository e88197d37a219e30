package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

// WorkLogUseCase gestiona jornadas: clock-in, clock-out y aprobación por
// supervisores. companyID viene siempre del principal, nunca del body.
type WorkLogUseCase struct {
	worklogRepo repository.WorkLogRepository
	projectRepo repository.ProjectRepository
}

// NewWorkLogUseCase construye el caso de uso.
func NewWorkLogUseCase(worklogRepo repository.WorkLogRepository, projectRepo repository.ProjectRepository) *WorkLogUseCase {
	return &WorkLogUseCase{worklogRepo: worklogRepo, projectRepo: projectRepo}
}

// ClockIn inicia una jornada en el proyecto indicado. Rechaza con
// domain.ErrConflict si la persona ya tiene una jornada abierta y con
// domain.ErrNotFound si el proyecto no pertenece a su empresa.
func (uc *WorkLogUseCase) ClockIn(ctx context.Context, companyID, personID string, in dto.ClockInRequest) (*dto.WorkLogResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, companyID, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.Status != entity.ProjectStatusActive {
		return nil, domain.ErrConflict
	}
	open, err := uc.worklogRepo.GetOpenByPerson(ctx, companyID, personID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	w := &entity.WorkLog{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ProjectID:  project.ID,
		PersonID:   personID,
		ClockIn:    now,
		Hours:      decimal.Zero,
		HourlyRate: project.HourlyRate,
		Status:     entity.WorkLogStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.worklogRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return entityToWorkLogResponse(w), nil
}

// ClockOut cierra la jornada y calcula las horas trabajadas (2 decimales).
// Solo el dueño de la jornada puede cerrarla.
func (uc *WorkLogUseCase) ClockOut(ctx context.Context, companyID, personID, worklogID string) (*dto.WorkLogResponse, error) {
	w, err := uc.worklogRepo.GetByID(ctx, companyID, worklogID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.PersonID != personID {
		return nil, domain.ErrForbidden
	}
	if w.Status != entity.WorkLogStatusOpen {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	w.ClockOut = &now
	w.Hours = decimal.NewFromFloat(now.Sub(w.ClockIn).Hours()).Round(2)
	w.Status = entity.WorkLogStatusClosed
	w.UpdatedAt = now
	if err := uc.worklogRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return entityToWorkLogResponse(w), nil
}

// Approve aprueba una jornada CERRADA. El approver viene del principal (la
// ruta exige rol SUPERVISOR o ADMIN); nadie aprueba su propia jornada.
func (uc *WorkLogUseCase) Approve(ctx context.Context, companyID, approverID, worklogID string) (*dto.WorkLogResponse, error) {
	w, err := uc.worklogRepo.GetByID(ctx, companyID, worklogID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.PersonID == approverID {
		return nil, domain.ErrForbidden
	}
	if w.Status != entity.WorkLogStatusClosed {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	w.Status = entity.WorkLogStatusApproved
	w.ApprovedBy = approverID
	w.UpdatedAt = now
	if err := uc.worklogRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return entityToWorkLogResponse(w), nil
}

// List lista jornadas de la empresa con paginación.
func (uc *WorkLogUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.WorkLogListResponse, error) {
	list, err := uc.worklogRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkLogResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *entityToWorkLogResponse(w))
	}
	return &dto.WorkLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToWorkLogResponse(w *entity.WorkLog) *dto.WorkLogResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkLogResponse{
		ID:         w.ID,
		CompanyID:  w.CompanyID,
		ProjectID:  w.ProjectID,
		PersonID:   w.PersonID,
		ClockIn:    w.ClockIn,
		ClockOut:   w.ClockOut,
		Hours:      w.Hours.StringFixed(2),
		HourlyRate: w.HourlyRate.StringFixed(2),
		Amount:     w.Amount().StringFixed(2),
		Status:     w.Status,
		ApprovedBy: w.ApprovedBy,
	}
}
