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

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{pool: pool}
}

// Create persiste una nueva invitación.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, company_id, email, token, role, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.Email, inv.Token, inv.Role, inv.ExpiresAt, inv.UsedAt, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por su token opaco. (nil, nil) si no existe.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	query := `
		SELECT id, company_id, email, token, role, expires_at, used_at, created_at
		FROM invitations WHERE token = $1`
	var inv entity.Invitation
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.CompanyID, &inv.Email, &inv.Token, &inv.Role, &inv.ExpiresAt, &inv.UsedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// MarkUsed consume la invitación.
func (r *InvitationRepo) MarkUsed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE invitations SET used_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("mark invitation used: %w", err)
	}
	return nil
}
