package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

var _ repository.WorkLogRepository = (*WorkLogRepo)(nil)

// WorkLogRepo implementación del puerto WorkLogRepository sobre PostgreSQL.
// Las columnas hours y hourly_rate son NUMERIC y se escanean a
// shopspring/decimal vía el codec registrado en el pool.
type WorkLogRepo struct {
	pool *pgxpool.Pool
}

// NewWorkLogRepository construye el adaptador de persistencia para jornadas.
func NewWorkLogRepository(pool *pgxpool.Pool) *WorkLogRepo {
	return &WorkLogRepo{pool: pool}
}

const worklogColumns = `id, company_id, project_id, person_id, clock_in, clock_out, hours, hourly_rate, status, COALESCE(approved_by, ''), created_at, updated_at`

// Create persiste una nueva jornada.
func (r *WorkLogRepo) Create(ctx context.Context, w *entity.WorkLog) error {
	query := `
		INSERT INTO worklogs (id, company_id, project_id, person_id, clock_in, clock_out, hours, hourly_rate, status, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		w.ID, w.CompanyID, w.ProjectID, w.PersonID, w.ClockIn, w.ClockOut,
		w.Hours, w.HourlyRate, w.Status, w.ApprovedBy, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert worklog: %w", err)
	}
	return nil
}

// GetByID obtiene una jornada por ID dentro de la empresa. (nil, nil) si no existe.
func (r *WorkLogRepo) GetByID(ctx context.Context, companyID, id string) (*entity.WorkLog, error) {
	query := `SELECT ` + worklogColumns + ` FROM worklogs WHERE company_id = $1 AND id = $2`
	return r.scanOne(ctx, query, companyID, id)
}

// GetOpenByPerson devuelve la jornada OPEN de la persona o (nil, nil).
func (r *WorkLogRepo) GetOpenByPerson(ctx context.Context, companyID, personID string) (*entity.WorkLog, error) {
	query := `
		SELECT ` + worklogColumns + `
		FROM worklogs WHERE company_id = $1 AND person_id = $2 AND status = 'OPEN'
		LIMIT 1`
	return r.scanOne(ctx, query, companyID, personID)
}

func (r *WorkLogRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.WorkLog, error) {
	var w entity.WorkLog
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&w.ID, &w.CompanyID, &w.ProjectID, &w.PersonID, &w.ClockIn, &w.ClockOut,
		&w.Hours, &w.HourlyRate, &w.Status, &w.ApprovedBy, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worklog: %w", err)
	}
	return &w, nil
}

// Update actualiza una jornada (scoped por company_id).
func (r *WorkLogRepo) Update(ctx context.Context, w *entity.WorkLog) error {
	query := `
		UPDATE worklogs SET clock_out = $3, hours = $4, status = $5, approved_by = NULLIF($6, ''), updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		w.CompanyID, w.ID, w.ClockOut, w.Hours, w.Status, w.ApprovedBy, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update worklog: %w", err)
	}
	return nil
}

// ListByCompany lista jornadas de la empresa con paginación.
func (r *WorkLogRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.WorkLog, error) {
	query := `
		SELECT ` + worklogColumns + `
		FROM worklogs WHERE company_id = $1
		ORDER BY clock_in DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, companyID, limit, offset)
}

// ListByPeriod lista jornadas iniciadas dentro de [from, to].
func (r *WorkLogRepo) ListByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]*entity.WorkLog, error) {
	query := `
		SELECT ` + worklogColumns + `
		FROM worklogs WHERE company_id = $1 AND clock_in >= $2 AND clock_in <= $3
		ORDER BY clock_in ASC`
	return r.scanMany(ctx, query, companyID, from, to)
}

func (r *WorkLogRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.WorkLog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list worklogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkLog
	for rows.Next() {
		var w entity.WorkLog
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.ProjectID, &w.PersonID, &w.ClockIn, &w.ClockOut,
			&w.Hours, &w.HourlyRate, &w.Status, &w.ApprovedBy, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan worklog: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Summary agrega horas y contadores desde from para el dashboard.
func (r *WorkLogRepo) Summary(ctx context.Context, companyID string, from time.Time) (*entity.WorkSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(hours) FILTER (WHERE clock_in >= $2), 0),
			COUNT(*) FILTER (WHERE status = 'OPEN'),
			COUNT(*) FILTER (WHERE status = 'CLOSED')
		FROM worklogs WHERE company_id = $1`
	var s entity.WorkSummary
	err := r.pool.QueryRow(ctx, query, companyID, from).Scan(&s.TotalHours, &s.OpenLogs, &s.PendingApproval)
	if err != nil {
		return nil, fmt.Errorf("worklog summary: %w", err)
	}
	return &s, nil
}
