package repository

import (
	"context"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// MembershipRepository define el puerto de persistencia para Membership.
//
// La lectura ListActiveByPerson es la única operación bloqueante del núcleo de
// resolución de identidad: la implementación debe usar timeouts acotados y
// respetar la cancelación del ctx (sin escrituras parciales que abandonar).
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	GetByID(ctx context.Context, id string) (*entity.Membership, error)
	// ListActiveByPerson devuelve TODAS las membresías ACTIVAS de la persona;
	// la selección de la vigente es responsabilidad del resolver, no del SQL.
	ListActiveByPerson(ctx context.Context, personID string) ([]*entity.Membership, error)
	// GetActiveByPersonAndCompany devuelve la membresía ACTIVA del par
	// (persona, empresa) o (nil, nil). Sostiene la idempotencia de refresh-company.
	GetActiveByPersonAndCompany(ctx context.Context, personID, companyID string) (*entity.Membership, error)
	// EndMembership cierra la membresía con end_date y estado INACTIVE (no borra).
	EndMembership(ctx context.Context, id string) error
}
