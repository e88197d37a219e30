package membership_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraTrack-api/internal/application/membership"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de membresías
// ──────────────────────────────────────────────────────────────────────────────

type fakeMembershipRepo struct {
	active []*entity.Membership
	err    error
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	f.active = append(f.active, m)
	return nil
}

func (f *fakeMembershipRepo) GetByID(ctx context.Context, id string) (*entity.Membership, error) {
	for _, m := range f.active {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) ListActiveByPerson(ctx context.Context, personID string) ([]*entity.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Membership
	for _, m := range f.active {
		if m.PersonID == personID && m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) GetActiveByPersonAndCompany(ctx context.Context, personID, companyID string) (*entity.Membership, error) {
	for _, m := range f.active {
		if m.PersonID == personID && m.CompanyID == companyID && m.IsActive() {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) EndMembership(ctx context.Context, id string) error { return nil }

func activeMembership(id, personID, companyID string, start time.Time) *entity.Membership {
	return &entity.Membership{
		ID:        id,
		PersonID:  personID,
		CompanyID: companyID,
		Role:      entity.RoleWorker,
		Status:    entity.MembershipStatusActive,
		StartDate: start,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveCurrent
// ──────────────────────────────────────────────────────────────────────────────

// Dos membresías ACTIVAS con fechas distintas: gana la de StartDate más reciente.
func TestResolveCurrent_GanaLaMasReciente(t *testing.T) {
	t1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{active: []*entity.Membership{
		activeMembership("m-1", "p-1", "c-vieja", t1),
		activeMembership("m-2", "p-1", "c-nueva", t2),
	}}
	resolver := membership.NewResolver(repo)

	current, err := resolver.ResolveCurrent(context.Background(), "p-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "c-nueva", current.CompanyID,
		"debe ganar la membresía con StartDate más reciente")
}

// Empate de StartDate: gana el ID mayor, sin importar el orden de llegada.
func TestResolveCurrent_EmpateDeFecha_GanaIDMayor(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeMembershipRepo{active: []*entity.Membership{
		activeMembership("m-bbb", "p-1", "c-b", start),
		activeMembership("m-aaa", "p-1", "c-a", start),
	}}
	resolver := membership.NewResolver(repo)

	current, err := resolver.ResolveCurrent(context.Background(), "p-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "m-bbb", current.ID, "en empate de fecha gana el ID mayor")
}

// Sin membresías ACTIVAS: (nil, nil), no es un error.
func TestResolveCurrent_SinActivas_DevuelveNil(t *testing.T) {
	inactive := activeMembership("m-1", "p-1", "c-1", time.Now())
	inactive.Status = entity.MembershipStatusInactive
	repo := &fakeMembershipRepo{active: []*entity.Membership{inactive}}
	resolver := membership.NewResolver(repo)

	current, err := resolver.ResolveCurrent(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Nil(t, current, "sin membresías ACTIVAS el resultado es nil, no error")
}

// Membresías de otra persona no participan en la resolución.
func TestResolveCurrent_IgnoraOtrasPersonas(t *testing.T) {
	repo := &fakeMembershipRepo{active: []*entity.Membership{
		activeMembership("m-1", "p-otro", "c-1", time.Now()),
	}}
	resolver := membership.NewResolver(repo)

	current, err := resolver.ResolveCurrent(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

// Fallo de infraestructura: el error sube tal cual al caller.
func TestResolveCurrent_ErrorDeRepo_Propaga(t *testing.T) {
	repo := &fakeMembershipRepo{err: errors.New("db caída")}
	resolver := membership.NewResolver(repo)

	current, err := resolver.ResolveCurrent(context.Background(), "p-1")
	assert.Error(t, err)
	assert.Nil(t, current)
}
