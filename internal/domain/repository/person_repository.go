package repository

import (
	"context"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// PersonRepository define el puerto de persistencia para Person (DIP).
// Los "no encontrado" esperados devuelven (nil, nil); los fallos de
// infraestructura devuelven error envuelto.
type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	GetByID(ctx context.Context, id string) (*entity.Person, error)
	GetByEmail(ctx context.Context, email string) (*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Person, error)
}
