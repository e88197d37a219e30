// Package slug normaliza nombres de empresa a identificadores URL-safe
// ("Construcciones Peñalosa S.A.S." -> "construcciones-penalosa-s-a-s") y
// valida slugs recibidos desde la URL antes de usarlos como contexto tenant.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents descompone (NFD) y elimina marcas diacríticas: "peñalosa" -> "penalosa".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make deriva un slug a partir de un nombre libre. Devuelve cadena vacía si
// el nombre no contiene ningún carácter utilizable.
func Make(name string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(name))
	}

	var b strings.Builder
	lastHyphen := true // evita guion inicial
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// IsValid verifica que s sea un slug aceptable: minúsculas, dígitos y guiones,
// sin guiones en los extremos y longitud 1..64.
func IsValid(s string) bool {
	if len(s) == 0 || len(s) > 64 {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
