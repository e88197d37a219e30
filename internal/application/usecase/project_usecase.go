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

// ProjectUseCase aplica reglas de negocio para proyectos (obras).
// Todas las operaciones reciben el companyID del principal: el aislamiento
// tenant se garantiza aquí y en el predicado SQL del repositorio.
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create crea un proyecto para la empresa del principal.
func (uc *ProjectUseCase) Create(ctx context.Context, companyID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	rate := decimal.Zero
	if in.HourlyRate != "" {
		var err error
		rate, err = decimal.NewFromString(in.HourlyRate)
		if err != nil || rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	start := time.Now()
	if in.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		start = parsed
	}
	now := time.Now()
	project := &entity.Project{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		Status:     entity.ProjectStatusActive,
		HourlyRate: rate,
		StartDate:  start,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return entityToProjectResponse(project), nil
}

// GetByID obtiene un proyecto de la empresa del principal. (nil, nil) si no
// existe o pertenece a otra empresa.
func (uc *ProjectUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return entityToProjectResponse(project), nil
}

// List lista proyectos de la empresa con paginación.
func (uc *ProjectUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		Name:       p.Name,
		Status:     p.Status,
		HourlyRate: p.HourlyRate.StringFixed(2),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
