package stats

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeCity produce la clave de agrupación por ciudad: minúsculas, sin
// espacios sobrantes y sin marcas diacríticas, de modo que "Bogotá", "bogota"
// y " BOGOTA " caigan en el mismo bucket. La grafía original (primera vista)
// se conserva aparte como etiqueta de presentación.
func normalizeCity(city string) string {
	s := strings.ToLower(strings.TrimSpace(city))
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return folded
}
