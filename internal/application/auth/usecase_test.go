package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ObraTrack-api/internal/application/auth"
	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/application/membership"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/ObraTrack-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakePersonRepo struct {
	byEmail map[string]*entity.Person
	byID    map[string]*entity.Person
}

func newFakePersonRepo(people ...*entity.Person) *fakePersonRepo {
	f := &fakePersonRepo{byEmail: map[string]*entity.Person{}, byID: map[string]*entity.Person{}}
	for _, p := range people {
		f.byEmail[p.Email] = p
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePersonRepo) Create(ctx context.Context, p *entity.Person) error {
	f.byEmail[p.Email] = p
	f.byID[p.ID] = p
	return nil
}
func (f *fakePersonRepo) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	return f.byID[id], nil
}
func (f *fakePersonRepo) GetByEmail(ctx context.Context, email string) (*entity.Person, error) {
	return f.byEmail[email], nil
}
func (f *fakePersonRepo) Update(ctx context.Context, p *entity.Person) error {
	f.byEmail[p.Email] = p
	f.byID[p.ID] = p
	return nil
}
func (f *fakePersonRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Person, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	f := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		f.companies[c.ID] = c
	}
	return f
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}
func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

type fakeMembershipRepo struct {
	memberships []*entity.Membership
}

func (f *fakeMembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	f.memberships = append(f.memberships, m)
	return nil
}
func (f *fakeMembershipRepo) GetByID(ctx context.Context, id string) (*entity.Membership, error) {
	for _, m := range f.memberships {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMembershipRepo) ListActiveByPerson(ctx context.Context, personID string) ([]*entity.Membership, error) {
	var out []*entity.Membership
	for _, m := range f.memberships {
		if m.PersonID == personID && m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeMembershipRepo) GetActiveByPersonAndCompany(ctx context.Context, personID, companyID string) (*entity.Membership, error) {
	for _, m := range f.memberships {
		if m.PersonID == personID && m.CompanyID == companyID && m.IsActive() {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMembershipRepo) EndMembership(ctx context.Context, id string) error { return nil }

type fakeInvitationRepo struct {
	invitations map[string]*entity.Invitation // por token
}

func newFakeInvitationRepo(invs ...*entity.Invitation) *fakeInvitationRepo {
	f := &fakeInvitationRepo{invitations: map[string]*entity.Invitation{}}
	for _, inv := range invs {
		f.invitations[inv.Token] = inv
	}
	return f
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	f.invitations[inv.Token] = inv
	return nil
}
func (f *fakeInvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	return f.invitations[token], nil
}
func (f *fakeInvitationRepo) MarkUsed(ctx context.Context, id string) error {
	now := time.Now()
	for _, inv := range f.invitations {
		if inv.ID == id {
			inv.UsedAt = &now
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "secret-de-pruebas-obratrack"
	testIssuer   = "obratrack-test"
	testPassword = "obra-segura-123"
)

var (
	hashOnce   sync.Once
	testedHash string
)

// testHash calcula el bcrypt del password de pruebas una sola vez (es costoso).
func testHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := auth.HashPassword(testPassword)
		require.NoError(t, err)
		testedHash = h
	})
	return testedHash
}

type fixture struct {
	uc          *auth.AuthUseCase
	persons     *fakePersonRepo
	companies   *fakeCompanyRepo
	memberships *fakeMembershipRepo
	invitations *fakeInvitationRepo
}

func newFixture(t *testing.T, demo []auth.DemoAccount, people []*entity.Person, companies []*entity.Company, memberships []*entity.Membership, invs []*entity.Invitation) *fixture {
	t.Helper()
	persons := newFakePersonRepo(people...)
	companyRepo := newFakeCompanyRepo(companies...)
	membershipRepo := &fakeMembershipRepo{memberships: memberships}
	invitationRepo := newFakeInvitationRepo(invs...)

	verifier := auth.NewVerifier(persons, demo)
	resolver := membership.NewResolver(membershipRepo)
	uc := auth.NewAuthUseCase(
		verifier, resolver,
		persons, companyRepo, membershipRepo, invitationRepo,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer},
	)
	return &fixture{uc: uc, persons: persons, companies: companyRepo, memberships: membershipRepo, invitations: invitationRepo}
}

func activePerson(id, email, hash, companyHint string) *entity.Person {
	return &entity.Person{
		ID:           id,
		Email:        email,
		Name:         "Persona " + id,
		PasswordHash: hash,
		CompanyID:    companyHint,
		Status:       entity.PersonStatusActive,
	}
}

func operatingCompany(id, slug string) *entity.Company {
	return &entity.Company{ID: id, Name: "Empresa " + id, Slug: slug, Status: entity.CompanyStatusActive}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// Camino feliz: credenciales correctas, una membresía ACTIVA y empresa
// operativa. El token resultante embebe rol, empresa y slug.
func TestLogin_CaminoFeliz_TokenConClaims(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "")},
		[]*entity.Company{operatingCompany("c-1", "constructora-andina")},
		[]*entity.Membership{{
			ID: "m-1", PersonID: "p-1", CompanyID: "c-1",
			Role: entity.RoleSupervisor, Status: entity.MembershipStatusActive,
			StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}},
		nil,
	)

	out, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obra.co", Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	principal, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err, "el token emitido debe ser verificable con el mismo secret")
	assert.Equal(t, "p-1", principal.UserID)
	assert.Equal(t, entity.RoleSupervisor, principal.Role)
	assert.Equal(t, "c-1", principal.CompanyID)
	assert.Equal(t, "constructora-andina", principal.CompanySlug)
	assert.Equal(t, "c-1", out.User.CompanyID)
}

// Password incorrecto y email inexistente producen EXACTAMENTE el mismo error:
// la respuesta no debe permitir enumerar cuentas.
func TestLogin_CredencialesInvalidas_ErrorUniforme(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "")},
		nil, nil, nil,
	)

	_, errPassword := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obra.co", Password: "incorrecto"})
	_, errEmail := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@obra.co", Password: testPassword})

	assert.ErrorIs(t, errPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, errPassword, errEmail, "ambos fallos deben ser indistinguibles")
}

// Credenciales válidas pero cero membresías ACTIVAS: la sesión no se emite.
func TestLogin_SinMembresia_ErrNoTenantContext(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "c-hint")},
		[]*entity.Company{operatingCompany("c-hint", "hint-sa")},
		nil, nil,
	)

	_, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obra.co", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrNoTenantContext,
		"el hint directo de Person no debe reconciliarse en silencio durante el login")
}

// Empresa SUSPENDED no admite sesiones aunque la membresía esté ACTIVA.
func TestLogin_EmpresaSuspendida_ErrForbidden(t *testing.T) {
	suspended := operatingCompany("c-1", "suspendida-sas")
	suspended.Status = entity.CompanyStatusSuspended
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "")},
		[]*entity.Company{suspended},
		[]*entity.Membership{{
			ID: "m-1", PersonID: "p-1", CompanyID: "c-1",
			Role: entity.RoleWorker, Status: entity.MembershipStatusActive,
			StartDate: time.Now(),
		}},
		nil,
	)

	_, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obra.co", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Cuenta demo: rol y empresa salen del allowlist, sin resolver membresías.
func TestLogin_CuentaDemo_UsaAllowlist(t *testing.T) {
	fx := newFixture(t,
		[]auth.DemoAccount{{
			Email: "demo@obra.co", Password: "demo-pass", Name: "Demo",
			Role: entity.RoleAdmin, CompanyID: "c-demo", CompanySlug: "demo-sa",
		}},
		nil, nil, nil, nil,
	)

	out, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "demo@obra.co", Password: "demo-pass"})
	require.NoError(t, err)

	principal, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, principal.Role)
	assert.Equal(t, "c-demo", principal.CompanyID)
	assert.Equal(t, "demo-sa", principal.CompanySlug)
}

// Cuenta demo con password incorrecto: mismo fallo uniforme.
func TestLogin_CuentaDemoPasswordMalo_ErrorUniforme(t *testing.T) {
	fx := newFixture(t,
		[]auth.DemoAccount{{Email: "demo@obra.co", Password: "demo-pass", Role: entity.RoleAdmin}},
		nil, nil, nil, nil,
	)

	_, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "demo@obra.co", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RefreshCompany
// ──────────────────────────────────────────────────────────────────────────────

// Sin membresía pero con hint en Person: la reconciliación crea la membresía
// WORKER y un login posterior ya resuelve empresa.
func TestRefreshCompany_CreaMembresiaDesdeHint(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "c-1")},
		[]*entity.Company{operatingCompany("c-1", "constructora-andina")},
		nil, nil,
	)

	out, err := fx.uc.RefreshCompany(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "c-1", out.Company.ID)
	require.Len(t, fx.memberships.memberships, 1)
	assert.Equal(t, entity.RoleWorker, fx.memberships.memberships[0].Role)

	// Login reintentado tras la reconciliación: ahora sí hay contexto.
	login, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@obra.co", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "c-1", login.User.CompanyID)
}

// Con membresía vigente la operación es idempotente: no crea filas nuevas.
func TestRefreshCompany_Idempotente(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "c-1")},
		[]*entity.Company{operatingCompany("c-1", "constructora-andina")},
		[]*entity.Membership{{
			ID: "m-1", PersonID: "p-1", CompanyID: "c-1",
			Role: entity.RoleWorker, Status: entity.MembershipStatusActive,
			StartDate: time.Now(),
		}},
		nil,
	)

	out, err := fx.uc.RefreshCompany(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", out.Company.ID)
	assert.Len(t, fx.memberships.memberships, 1, "no debe duplicar la membresía existente")
}

// Ni membresía ni hint: no hay nada que reconciliar.
func TestRefreshCompany_SinNada_ErrNotFound(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{activePerson("p-1", "ana@obra.co", testHash(t), "")},
		nil, nil, nil,
	)

	_, err := fx.uc.RefreshCompany(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Invite + SetPassword
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: invitar, fijar password con el token y loguearse.
func TestInviteYSetPassword_FlujoCompleto(t *testing.T) {
	fx := newFixture(t, nil, nil,
		[]*entity.Company{operatingCompany("c-1", "constructora-andina")},
		nil, nil,
	)

	inv, err := fx.uc.Invite(context.Background(), "c-1", dto.InviteRequest{
		Email: "nuevo@obra.co", Name: "Obrero Nuevo", Role: entity.RoleWorker,
	})
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)

	err = fx.uc.SetPassword(context.Background(), dto.SetPasswordRequest{
		Token: inv.Token, Email: "nuevo@obra.co", Password: "una-clave-larga",
	})
	require.NoError(t, err)

	login, err := fx.uc.Login(context.Background(), dto.LoginRequest{Email: "nuevo@obra.co", Password: "una-clave-larga"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", login.User.CompanyID)
	assert.Equal(t, entity.RoleWorker, login.User.Role)
}

// Rol desconocido en la invitación: rechazo inmediato.
func TestInvite_RolDesconocido_ErrInvalidInput(t *testing.T) {
	fx := newFixture(t, nil, nil, nil, nil, nil)
	_, err := fx.uc.Invite(context.Background(), "c-1", dto.InviteRequest{Email: "x@obra.co", Role: "GERENTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Token vencido: no se fija password.
func TestSetPassword_TokenVencido_ErrInvalidToken(t *testing.T) {
	fx := newFixture(t, nil,
		[]*entity.Person{{ID: "p-1", Email: "nuevo@obra.co", Status: entity.PersonStatusInvited}},
		nil, nil,
		[]*entity.Invitation{{
			ID: "inv-1", CompanyID: "c-1", Email: "nuevo@obra.co",
			Token: "token-vencido", Role: entity.RoleWorker,
			ExpiresAt: time.Now().Add(-time.Hour),
		}},
	)

	err := fx.uc.SetPassword(context.Background(), dto.SetPasswordRequest{
		Token: "token-vencido", Email: "nuevo@obra.co", Password: "una-clave-larga",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// El email de la petición debe coincidir con el de la invitación.
func TestSetPassword_EmailNoCoincide_ErrInvalidToken(t *testing.T) {
	fx := newFixture(t, nil, nil, nil, nil,
		[]*entity.Invitation{{
			ID: "inv-1", CompanyID: "c-1", Email: "nuevo@obra.co",
			Token: "token-valido", Role: entity.RoleWorker,
			ExpiresAt: time.Now().Add(time.Hour),
		}},
	)

	err := fx.uc.SetPassword(context.Background(), dto.SetPasswordRequest{
		Token: "token-valido", Email: "otro@obra.co", Password: "una-clave-larga",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// Un token ya canjeado no puede reutilizarse.
func TestSetPassword_TokenUsado_ErrInvalidToken(t *testing.T) {
	fx := newFixture(t, nil, nil,
		[]*entity.Company{operatingCompany("c-1", "constructora-andina")},
		nil, nil,
	)

	inv, err := fx.uc.Invite(context.Background(), "c-1", dto.InviteRequest{Email: "nuevo@obra.co", Role: entity.RoleWorker})
	require.NoError(t, err)

	req := dto.SetPasswordRequest{Token: inv.Token, Email: "nuevo@obra.co", Password: "una-clave-larga"}
	require.NoError(t, fx.uc.SetPassword(context.Background(), req))

	err = fx.uc.SetPassword(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "el token se consume en el primer canje")
}
