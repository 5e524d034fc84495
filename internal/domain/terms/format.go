package terms

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section bloque de cláusulas resueltas de una categoría.
type Section struct {
	Title string
	Terms []string
}

// FormatSelectedTerms resuelve los ids seleccionados a su texto de catálogo.
//
// Se respeta el orden dado por el llamador; los ids desconocidos se omiten sin
// error. El texto libre no vacío se agrega como última cláusula. Las categorías
// sin cláusulas resultantes no aparecen en el resultado.
func FormatSelectedTerms(selected map[Category][]string, custom map[Category]string) map[Category]Section {
	out := make(map[Category]Section)
	for _, cat := range categoryOrder {
		ids, ok := selected[cat]
		if !ok {
			continue
		}
		var resolved []string
		for _, id := range ids {
			if cl, ok := Lookup(cat, id); ok {
				resolved = append(resolved, cl.Text)
			}
		}
		if txt := strings.TrimSpace(custom[cat]); txt != "" {
			resolved = append(resolved, txt)
		}
		if len(resolved) == 0 {
			continue
		}
		out[cat] = Section{Title: categoryTitles[cat], Terms: resolved}
	}
	return out
}

// FormatSelectedTermsAsText igual que FormatSelectedTerms pero en un solo bloque:
// encabezado en mayúsculas por categoría, una cláusula por línea y una línea en
// blanco entre categorías.
func FormatSelectedTermsAsText(selected map[Category][]string, custom map[Category]string) string {
	sections := FormatSelectedTerms(selected, custom)
	upper := cases.Upper(language.Turkish)

	var blocks []string
	for _, cat := range categoryOrder {
		s, ok := sections[cat]
		if !ok {
			continue
		}
		lines := append([]string{upper.String(s.Title)}, s.Terms...)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
