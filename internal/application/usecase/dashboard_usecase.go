package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

// DashboardUseCase agregados de productividad para el panel de la empresa.
type DashboardUseCase struct {
	worklogRepo repository.WorkLogRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(worklogRepo repository.WorkLogRepository) *DashboardUseCase {
	return &DashboardUseCase{worklogRepo: worklogRepo}
}

// Summary devuelve horas acumuladas desde el lunes de la semana en curso,
// jornadas abiertas y jornadas pendientes de aprobación.
func (uc *DashboardUseCase) Summary(ctx context.Context, companyID string) (*dto.DashboardSummaryResponse, error) {
	since := startOfWeek(time.Now())
	summary, err := uc.worklogRepo.Summary(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		TotalHours:      summary.TotalHours.StringFixed(2),
		OpenLogs:        summary.OpenLogs,
		PendingApproval: summary.PendingApproval,
		Since:           since.Format("2006-01-02"),
	}, nil
}

// startOfWeek devuelve las 00:00 del lunes de la semana de t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // domingo cuenta como día 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
