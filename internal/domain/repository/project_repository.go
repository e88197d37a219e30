package repository

import (
	"context"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
// Todas las operaciones reciben companyID y lo inyectan en el predicado SQL:
// un proyecto de otra empresa simplemente no existe para el caller.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Project, error)
}
