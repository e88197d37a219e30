package repository

import (
	"context"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	MarkUsed(ctx context.Context, id string) error
}
