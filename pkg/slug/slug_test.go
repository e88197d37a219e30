package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ObraTrack-api/pkg/slug"
)

// Make pliega acentos, colapsa separadores y nunca deja guiones en los extremos.
func TestMake_NormalizaNombresDeEmpresa(t *testing.T) {
	cases := map[string]string{
		"Construcciones Peñalosa S.A.S.": "construcciones-penalosa-s-a-s",
		"  ACME  Co  ":                   "acme-co",
		"Obra & Vía 2024":                "obra-via-2024",
		"ÁÉÍÓÚ ñ":                        "aeiou-n",
		"---":                            "",
		"":                               "",
	}
	for name, want := range cases {
		assert.Equal(t, want, slug.Make(name), "Make(%q)", name)
	}
}

// Todo slug generado por Make (no vacío) debe pasar IsValid.
func TestMake_ProduceSlugsValidos(t *testing.T) {
	for _, name := range []string{"Constructora Andina", "Peñalosa & Hijos", "obra 24/7"} {
		s := slug.Make(name)
		assert.True(t, slug.IsValid(s), "Make(%q) = %q debe ser válido", name, s)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"acme-co", "a", "obra-2024", "x1-y2-z3"}
	for _, s := range valid {
		assert.True(t, slug.IsValid(s), "IsValid(%q)", s)
	}
	invalid := []string{"", "-acme", "acme-", "Acme", "acme co", "acme_co", "ñandu",
		strings.Repeat("a", 65)}
	for _, s := range invalid {
		assert.False(t, slug.IsValid(s), "IsValid(%q)", s)
	}
}
