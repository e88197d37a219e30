package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/application/usecase"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	f.projects[p.ID] = p
	return nil
}
func (f *fakeProjectRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Project, error) {
	p := f.projects[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *entity.Project) error { return nil }
func (f *fakeProjectRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Project, error) {
	return nil, nil
}

type fakeWorkLogRepo struct {
	logs map[string]*entity.WorkLog
}

func (f *fakeWorkLogRepo) Create(ctx context.Context, w *entity.WorkLog) error {
	cp := *w
	f.logs[w.ID] = &cp
	return nil
}
func (f *fakeWorkLogRepo) GetByID(ctx context.Context, companyID, id string) (*entity.WorkLog, error) {
	w := f.logs[id]
	if w == nil || w.CompanyID != companyID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}
func (f *fakeWorkLogRepo) Update(ctx context.Context, w *entity.WorkLog) error {
	cp := *w
	f.logs[w.ID] = &cp
	return nil
}
func (f *fakeWorkLogRepo) GetOpenByPerson(ctx context.Context, companyID, personID string) (*entity.WorkLog, error) {
	for _, w := range f.logs {
		if w.CompanyID == companyID && w.PersonID == personID && w.Status == entity.WorkLogStatusOpen {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeWorkLogRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.WorkLog, error) {
	var out []*entity.WorkLog
	for _, w := range f.logs {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeWorkLogRepo) ListByPeriod(ctx context.Context, companyID string, from, to time.Time) ([]*entity.WorkLog, error) {
	return nil, nil
}
func (f *fakeWorkLogRepo) Summary(ctx context.Context, companyID string, from time.Time) (*entity.WorkSummary, error) {
	return &entity.WorkSummary{TotalHours: decimal.Zero}, nil
}

func newWorkLogFixture(projects ...*entity.Project) (*usecase.WorkLogUseCase, *fakeWorkLogRepo) {
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{}}
	for _, p := range projects {
		projectRepo.projects[p.ID] = p
	}
	worklogRepo := &fakeWorkLogRepo{logs: map[string]*entity.WorkLog{}}
	return usecase.NewWorkLogUseCase(worklogRepo, projectRepo), worklogRepo
}

func activeProject(id, companyID string) *entity.Project {
	return &entity.Project{
		ID: id, CompanyID: companyID, Name: "Obra " + id,
		Status: entity.ProjectStatusActive, HourlyRate: decimal.NewFromInt(20),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ClockIn / ClockOut / Approve
// ──────────────────────────────────────────────────────────────────────────────

// Camino feliz: clock-in abre una jornada OPEN con la tarifa del proyecto.
func TestClockIn_CaminoFeliz(t *testing.T) {
	uc, _ := newWorkLogFixture(activeProject("pr-1", "c-1"))

	out, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.WorkLogStatusOpen, out.Status)
	assert.Equal(t, "20.00", out.HourlyRate, "la jornada congela la tarifa vigente del proyecto")
}

// Una persona no puede tener dos jornadas abiertas a la vez.
func TestClockIn_ConJornadaAbierta_ErrConflict(t *testing.T) {
	uc, _ := newWorkLogFixture(activeProject("pr-1", "c-1"))

	_, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	require.NoError(t, err)

	_, err = uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Proyecto de otra empresa: invisible para el caller.
func TestClockIn_ProyectoDeOtraEmpresa_ErrNotFound(t *testing.T) {
	uc, _ := newWorkLogFixture(activeProject("pr-1", "c-otra"))

	_, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Proyecto pausado o cerrado no acepta jornadas.
func TestClockIn_ProyectoNoActivo_ErrConflict(t *testing.T) {
	paused := activeProject("pr-1", "c-1")
	paused.Status = entity.ProjectStatusPaused
	uc, _ := newWorkLogFixture(paused)

	_, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Clock-out cierra la jornada, calcula horas y deja el estado en CLOSED.
func TestClockOut_CierraYCalculaHoras(t *testing.T) {
	uc, repo := newWorkLogFixture(activeProject("pr-1", "c-1"))

	opened, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	require.NoError(t, err)

	// Retrocede el clock-in dos horas para que el cálculo no dependa del reloj del test.
	stored := repo.logs[opened.ID]
	stored.ClockIn = stored.ClockIn.Add(-2 * time.Hour)

	out, err := uc.ClockOut(context.Background(), "c-1", "p-1", opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkLogStatusClosed, out.Status)
	assert.Equal(t, "2.00", out.Hours)
	assert.Equal(t, "40.00", out.Amount, "monto = horas x tarifa")
}

// Solo el dueño puede cerrar su jornada.
func TestClockOut_DeOtraPersona_ErrForbidden(t *testing.T) {
	uc, _ := newWorkLogFixture(activeProject("pr-1", "c-1"))

	opened, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	require.NoError(t, err)

	_, err = uc.ClockOut(context.Background(), "c-1", "p-intruso", opened.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Aprobar exige jornada CLOSED y un approver distinto del dueño.
func TestApprove_FlujoYRestricciones(t *testing.T) {
	uc, _ := newWorkLogFixture(activeProject("pr-1", "c-1"))

	opened, err := uc.ClockIn(context.Background(), "c-1", "p-1", dto.ClockInRequest{ProjectID: "pr-1"})
	require.NoError(t, err)

	// Jornada aún OPEN: no se puede aprobar.
	_, err = uc.Approve(context.Background(), "c-1", "p-supervisor", opened.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.ClockOut(context.Background(), "c-1", "p-1", opened.ID)
	require.NoError(t, err)

	// Nadie aprueba su propia jornada.
	_, err = uc.Approve(context.Background(), "c-1", "p-1", opened.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Approve(context.Background(), "c-1", "p-supervisor", opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkLogStatusApproved, out.Status)
	assert.Equal(t, "p-supervisor", out.ApprovedBy)

	// Aprobar dos veces no es válido: la jornada ya no está CLOSED.
	_, err = uc.Approve(context.Background(), "c-1", "p-otro-supervisor", opened.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
