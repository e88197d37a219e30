package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL.
type PersonRepo struct {
	pool *pgxpool.Pool
}

// NewPersonRepository construye el adaptador de persistencia para personas.
func NewPersonRepository(pool *pgxpool.Pool) *PersonRepo {
	return &PersonRepo{pool: pool}
}

const personColumns = `id, email, name, COALESCE(password_hash, ''), COALESCE(company_id, ''), status, created_at, updated_at`

// Create persiste una nueva persona.
func (r *PersonRepo) Create(ctx context.Context, p *entity.Person) error {
	query := `
		INSERT INTO persons (id, email, name, password_hash, company_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Email, p.Name, p.PasswordHash, p.CompanyID, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID. (nil, nil) si no existe.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail obtiene una persona por email. (nil, nil) si no existe.
func (r *PersonRepo) GetByEmail(ctx context.Context, email string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE email = $1 LIMIT 1`
	return r.scanOne(ctx, query, email)
}

func (r *PersonRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Person, error) {
	var p entity.Person
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Email, &p.Name, &p.PasswordHash, &p.CompanyID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// Update actualiza una persona.
func (r *PersonRepo) Update(ctx context.Context, p *entity.Person) error {
	query := `
		UPDATE persons SET email = $2, name = $3, password_hash = NULLIF($4, ''),
			company_id = NULLIF($5, ''), status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Email, p.Name, p.PasswordHash, p.CompanyID, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// ListByCompany lista personas cuya membresía ACTIVA apunta a la empresa.
func (r *PersonRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM persons p
		WHERE EXISTS (
			SELECT 1 FROM memberships m
			WHERE m.person_id = p.id AND m.company_id = $1 AND m.status = 'ACTIVE'
		)
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Person
	for rows.Next() {
		var p entity.Person
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.PasswordHash, &p.CompanyID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
