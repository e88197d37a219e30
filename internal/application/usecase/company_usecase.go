package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
	"github.com/jhoicas/ObraTrack-api/pkg/slug"
)

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa nueva en estado TRIAL. El slug se deriva del nombre
// si no viene en la petición; devuelve domain.ErrDuplicate si ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if !slug.IsValid(s) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          in.Name,
		NameLocalized: in.NameLocalized,
		Slug:          s,
		Status:        entity.CompanyStatusTrial,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetBySlug obtiene una empresa por slug. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetBySlug(ctx context.Context, s string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		NameLocalized: c.NameLocalized,
		Slug:          c.Slug,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
