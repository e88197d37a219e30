package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// WorkLogRepository define el puerto de persistencia para WorkLog.
// Igual que ProjectRepository, cada método exige companyID.
type WorkLogRepository interface {
	Create(ctx context.Context, w *entity.WorkLog) error
	GetByID(ctx context.Context, companyID, id string) (*entity.WorkLog, error)
	Update(ctx context.Context, w *entity.WorkLog) error
	// GetOpenByPerson devuelve la jornada OPEN de la persona o (nil, nil);
	// evita dos clock-in simultáneos.
	GetOpenByPerson(ctx context.Context, companyID, personID string) (*entity.WorkLog, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.WorkLog, error)
	ListByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]*entity.WorkLog, error)
	// Summary agrega horas y contadores desde from (dashboard).
	Summary(ctx context.Context, companyID string, from time.Time) (*entity.WorkSummary, error)
}
