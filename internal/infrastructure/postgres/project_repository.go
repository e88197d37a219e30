package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
// Cada consulta incluye company_id en el predicado: es la barrera contra
// fugas de datos entre tenants.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectColumns = `id, company_id, name, status, hourly_rate, start_date, end_date, created_at, updated_at`

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, company_id, name, status, hourly_rate, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.Status, p.HourlyRate, p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID dentro de la empresa. (nil, nil) si no
// existe o pertenece a otro tenant.
func (r *ProjectRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE company_id = $1 AND id = $2`
	var p entity.Project
	err := r.pool.QueryRow(ctx, query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Status, &p.HourlyRate, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza un proyecto (scoped por company_id).
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $3, status = $4, hourly_rate = $5, start_date = $6, end_date = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query,
		p.CompanyID, p.ID, p.Name, p.Status, p.HourlyRate, p.StartDate, p.EndDate, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ListByCompany lista proyectos de la empresa con paginación.
func (r *ProjectRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Status, &p.HourlyRate, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
