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

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository construye el adaptador de persistencia para membresías.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepo {
	return &MembershipRepo{pool: pool}
}

const membershipColumns = `id, person_id, company_id, role, status, start_date, end_date, created_at, updated_at`

// Create persiste una nueva membresía (una sola fila; atómica por sí misma).
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (id, person_id, company_id, role, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.PersonID, m.CompanyID, m.Role, m.Status, m.StartDate, m.EndDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// GetByID obtiene una membresía por ID. (nil, nil) si no existe.
func (r *MembershipRepo) GetByID(ctx context.Context, id string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// ListActiveByPerson devuelve todas las membresías ACTIVAS de la persona.
// La selección de la vigente la hace el resolver en memoria; aquí solo se
// garantiza lectura acotada (timeout del ctx del request).
func (r *MembershipRepo) ListActiveByPerson(ctx context.Context, personID string) ([]*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships WHERE person_id = $1 AND status = 'ACTIVE'
		ORDER BY start_date DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("list active memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.PersonID, &m.CompanyID, &m.Role, &m.Status, &m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetActiveByPersonAndCompany devuelve la membresía ACTIVA del par o (nil, nil).
func (r *MembershipRepo) GetActiveByPersonAndCompany(ctx context.Context, personID, companyID string) (*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE person_id = $1 AND company_id = $2 AND status = 'ACTIVE'
		ORDER BY start_date DESC, id DESC LIMIT 1`
	return r.scanOne(ctx, query, personID, companyID)
}

// EndMembership cierra la membresía: end_date = now, status = INACTIVE. No borra.
func (r *MembershipRepo) EndMembership(ctx context.Context, id string) error {
	query := `
		UPDATE memberships SET status = 'INACTIVE', end_date = $2, updated_at = $2
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("end membership: %w", err)
	}
	return nil
}

func (r *MembershipRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Membership, error) {
	var m entity.Membership
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.PersonID, &m.CompanyID, &m.Role, &m.Status, &m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}
