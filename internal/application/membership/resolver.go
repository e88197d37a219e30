// Package membership implementa la selección de la membresía "vigente" de una
// persona entre su historial de vínculos con empresas.
package membership

import (
	"context"

	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

// Resolver proyecta un único contexto de empresa a partir de las membresías
// ACTIVAS de una persona. Decisión deliberada: aunque alguien esté activo en
// varias empresas a la vez (contratista), la sesión siempre opera sobre UNA.
type Resolver struct {
	repo repository.MembershipRepository
}

// NewResolver construye el resolver con el puerto de persistencia.
func NewResolver(repo repository.MembershipRepository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveCurrent devuelve la membresía vigente de la persona o nil si no hay
// ninguna ACTIVA (el caller lo trata como "sin contexto tenant", no como error).
//
// Regla: gana la de StartDate más reciente. Empate de StartDate: gana el ID
// mayor, para que la selección sea total y determinista.
//
// El resultado no se cachea: cualquier flujo que pueda haber alterado la
// asociación vigente (ej. refresh-company) debe volver a invocar este método.
func (r *Resolver) ResolveCurrent(ctx context.Context, personID string) (*entity.Membership, error) {
	active, err := r.repo.ListActiveByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}

	current := active[0]
	for _, m := range active[1:] {
		if m.StartDate.After(current.StartDate) {
			current = m
			continue
		}
		if m.StartDate.Equal(current.StartDate) && m.ID > current.ID {
			current = m
		}
	}
	return current, nil
}
