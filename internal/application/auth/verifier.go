package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ObraTrack-api/internal/domain/repository"
)

// bcryptCost costo de hashing para passwords nuevos. El verify acepta hashes
// con cualquier costo almacenado.
const bcryptCost = 12

// DemoAccount entrada del allowlist de cuentas demo. La lista se inyecta desde
// configuración: un build de producción arranca con lista vacía y este camino
// no existe.
type DemoAccount struct {
	Email       string
	Password    string
	Name        string
	Role        string
	CompanyID   string
	CompanySlug string
}

// VerifiedIdentity resultado de una verificación de credenciales. Para cuentas
// demo el tenant viene fijado en la entrada; para cuentas reales Role/Company*
// quedan vacíos y los decide el resolver de membresías.
type VerifiedIdentity struct {
	PersonID    string
	Name        string
	Email       string
	Demo        bool
	Role        string
	CompanyID   string
	CompanySlug string
}

// Verifier valida pares email/password contra el allowlist demo o contra el
// hash bcrypt almacenado en Person. No elige tenant ni muta a la persona.
type Verifier struct {
	personRepo   repository.PersonRepository
	demoAccounts []DemoAccount
}

// NewVerifier construye el verificador. demoAccounts puede ser nil.
func NewVerifier(personRepo repository.PersonRepository, demoAccounts []DemoAccount) *Verifier {
	return &Verifier{personRepo: personRepo, demoAccounts: demoAccounts}
}

// Verify devuelve la identidad verificada o (nil, nil) si las credenciales no
// son válidas. Solo los fallos de infraestructura producen error.
func (v *Verifier) Verify(ctx context.Context, email, password string) (*VerifiedIdentity, error) {
	for _, acc := range v.demoAccounts {
		if acc.Email == email {
			if acc.Password != password {
				return nil, nil
			}
			return &VerifiedIdentity{
				PersonID:    "demo:" + acc.Email,
				Name:        acc.Name,
				Email:       acc.Email,
				Demo:        true,
				Role:        acc.Role,
				CompanyID:   acc.CompanyID,
				CompanySlug: acc.CompanySlug,
			}, nil
		}
	}

	person, err := v.personRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if person == nil || !person.HasPassword() {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return &VerifiedIdentity{
		PersonID: person.ID,
		Name:     person.Name,
		Email:    person.Email,
	}, nil
}

// HashPassword genera el hash bcrypt (costo 12) para persistir.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
