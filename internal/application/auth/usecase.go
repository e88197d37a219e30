package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
	"github.com/jhoicas/ObraTrack-api/internal/application/membership"
	"github.com/jhoicas/ObraTrack-api/internal/domain"
	"github.com/jhoicas/ObraTrack-api/internal/domain/entity"
	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
	"github.com/jhoicas/ObraTrack-api/pkg/jwt"
)

// invitationTTL vigencia de un token de invitación.
const invitationTTL = 7 * 24 * time.Hour

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase liga credenciales verificadas con la membresía vigente y produce
// el principal de sesión (Session Binder). También cubre la reconciliación
// refresh-company y el flujo de invitación / set-password.
type AuthUseCase struct {
	verifier       *Verifier
	resolver       *membership.Resolver
	personRepo     repository.PersonRepository
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	invitationRepo repository.InvitationRepository
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	verifier *Verifier,
	resolver *membership.Resolver,
	personRepo repository.PersonRepository,
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	invitationRepo repository.InvitationRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		verifier:       verifier,
		resolver:       resolver,
		personRepo:     personRepo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		jwtCfg:         jwtCfg,
	}
}

// unavailable marca un fallo de infraestructura preservando la causa en el
// mensaje; errors.Is(err, domain.ErrUnavailable) == true para el handler.
func unavailable(err error) error {
	return fmt.Errorf("%v: %w", err, domain.ErrUnavailable)
}

// Login verifica credenciales, resuelve la membresía vigente y emite el token
// de sesión con {sub, name, email, role, company_id, company_slug}.
//
// Fallos de credenciales y "sin contexto de empresa" se reportan ambos como
// fallo de autenticación; los fallos de DB salen como ErrUnavailable.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identity, err := uc.verifier.Verify(ctx, in.Email, in.Password)
	if err != nil {
		return nil, unavailable(err)
	}
	if identity == nil {
		return nil, domain.ErrInvalidCredentials
	}

	principal := jwt.Principal{
		UserID: identity.PersonID,
		Name:   identity.Name,
		Email:  identity.Email,
	}

	if identity.Demo {
		// Cuenta demo: rol y empresa vienen fijados en el allowlist.
		principal.Role = identity.Role
		principal.CompanyID = identity.CompanyID
		principal.CompanySlug = identity.CompanySlug
	} else {
		current, err := uc.resolver.ResolveCurrent(ctx, identity.PersonID)
		if err != nil {
			return nil, unavailable(err)
		}
		if current == nil {
			// Estado degradado/legacy: puede existir un CompanyID directo en
			// Person, pero solo refresh-company (explícito, por un ADMIN) lo
			// convierte en membresía. Aquí no se reconcilia en silencio.
			return nil, domain.ErrNoTenantContext
		}
		company, err := uc.companyRepo.GetByID(ctx, current.CompanyID)
		if err != nil {
			return nil, unavailable(err)
		}
		if company == nil || !company.CanOperate() {
			return nil, domain.ErrForbidden
		}
		principal.Role = current.Role
		principal.CompanyID = company.ID
		principal.CompanySlug = company.Slug
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, principal, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.PersonResponse{
			ID:          principal.UserID,
			Email:       principal.Email,
			Name:        principal.Name,
			Role:        principal.Role,
			CompanyID:   principal.CompanyID,
			CompanySlug: principal.CompanySlug,
		},
	}, nil
}

// RefreshCompany repara una membresía faltante a partir del CompanyID directo
// de Person (hint legacy). Idempotente: si ya existe membresía ACTIVA para la
// persona, devuelve su empresa sin crear filas nuevas. Devuelve ErrNotFound
// cuando no hay nada que reconciliar.
//
// Consistencia read-after-write: el insert es una sola fila; un login
// reintentado tras el éxito observa la membresía nueva vía el resolver.
func (uc *AuthUseCase) RefreshCompany(ctx context.Context, personID string) (*dto.RefreshCompanyResponse, error) {
	current, err := uc.resolver.ResolveCurrent(ctx, personID)
	if err != nil {
		return nil, unavailable(err)
	}
	if current != nil {
		company, err := uc.companyRepo.GetByID(ctx, current.CompanyID)
		if err != nil {
			return nil, unavailable(err)
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		return refreshResponse(company), nil
	}

	person, err := uc.personRepo.GetByID(ctx, personID)
	if err != nil {
		return nil, unavailable(err)
	}
	if person == nil || person.CompanyID == "" {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, person.CompanyID)
	if err != nil {
		return nil, unavailable(err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	// Doble chequeo del par (persona, empresa) antes de insertar: dos
	// reconciliaciones concurrentes no deben duplicar la fila.
	existing, err := uc.membershipRepo.GetActiveByPersonAndCompany(ctx, personID, company.ID)
	if err != nil {
		return nil, unavailable(err)
	}
	if existing == nil {
		now := time.Now()
		m := &entity.Membership{
			ID:        uuid.New().String(),
			PersonID:  personID,
			CompanyID: company.ID,
			Role:      entity.RoleWorker,
			Status:    entity.MembershipStatusActive,
			StartDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.membershipRepo.Create(ctx, m); err != nil {
			return nil, unavailable(err)
		}
	}
	return refreshResponse(company), nil
}

// Invite registra una invitación para el email dado dentro de companyID y crea
// la Person (estado INVITED, sin password) y la Membership ACTIVA si no
// existen. La entrega del token por email queda fuera de este servicio.
func (uc *AuthUseCase) Invite(ctx context.Context, companyID string, in dto.InviteRequest) (*dto.InviteResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	person, err := uc.personRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, unavailable(err)
	}
	if person == nil {
		name := in.Name
		if name == "" {
			name = in.Email
		}
		person = &entity.Person{
			ID:        uuid.New().String(),
			Email:     in.Email,
			Name:      name,
			CompanyID: companyID,
			Status:    entity.PersonStatusInvited,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.personRepo.Create(ctx, person); err != nil {
			return nil, err
		}
	}

	existing, err := uc.membershipRepo.GetActiveByPersonAndCompany(ctx, person.ID, companyID)
	if err != nil {
		return nil, unavailable(err)
	}
	if existing == nil {
		m := &entity.Membership{
			ID:        uuid.New().String(),
			PersonID:  person.ID,
			CompanyID: companyID,
			Role:      in.Role,
			Status:    entity.MembershipStatusActive,
			StartDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.membershipRepo.Create(ctx, m); err != nil {
			return nil, unavailable(err)
		}
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, err
	}
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Email:     in.Email,
		Token:     token,
		Role:      in.Role,
		ExpiresAt: now.Add(invitationTTL),
		CreatedAt: now,
	}
	if err := uc.invitationRepo.Create(ctx, inv); err != nil {
		return nil, unavailable(err)
	}
	return &dto.InviteResponse{
		InvitationID: inv.ID,
		Email:        inv.Email,
		Role:         inv.Role,
		Token:        inv.Token,
		ExpiresAt:    inv.ExpiresAt,
	}, nil
}

// SetPassword canjea un token de invitación y fija el password (bcrypt).
// El token SIEMPRE se valida contra la fila Invitation (email coincidente,
// no usado, no vencido) y se consume al éxito.
func (uc *AuthUseCase) SetPassword(ctx context.Context, in dto.SetPasswordRequest) error {
	if len(in.Password) < 8 {
		return domain.ErrInvalidInput
	}

	inv, err := uc.invitationRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return unavailable(err)
	}
	if inv == nil || inv.Email != in.Email || !inv.Usable(time.Now()) {
		return domain.ErrInvalidToken
	}

	person, err := uc.personRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return unavailable(err)
	}
	if person == nil {
		return domain.ErrInvalidToken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	person.PasswordHash = hash
	person.Status = entity.PersonStatusActive
	person.UpdatedAt = time.Now()
	if err := uc.personRepo.Update(ctx, person); err != nil {
		return unavailable(err)
	}
	if err := uc.invitationRepo.MarkUsed(ctx, inv.ID); err != nil {
		return unavailable(err)
	}
	return nil
}

func refreshResponse(c *entity.Company) *dto.RefreshCompanyResponse {
	return &dto.RefreshCompanyResponse{
		Success: true,
		Company: dto.CompanyRef{ID: c.ID, Name: c.Name, Slug: c.Slug},
	}
}

// newInvitationToken genera un token opaco de 32 bytes aleatorios en hex.
func newInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
