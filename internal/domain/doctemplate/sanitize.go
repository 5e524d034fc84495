package doctemplate

import (
	"fmt"
	"strings"
)

// SchemaDefectError sección de un esquema que no pasó la validación y fue
// reemplazada por su valor por defecto.
type SchemaDefectError struct {
	Section  string
	Problems []Problem
}

func (e *SchemaDefectError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("doctemplate: sección %s inválida: %s", e.Section, strings.Join(parts, "; "))
}

// Sanitize devuelve una copia del esquema donde cada sección inválida fue
// sustituida por la de DefaultSchema, junto con un error por sección afectada.
// Las secciones válidas se conservan intactas.
func Sanitize(s Schema) (Schema, []*SchemaDefectError) {
	res := ValidateSchema(s)
	if res.Valid() {
		return s, nil
	}

	bySection := make(map[string][]Problem)
	for _, p := range res.Problems {
		bySection[p.Section] = append(bySection[p.Section], p)
	}

	def := DefaultSchema()
	out := s
	var defects []*SchemaDefectError
	for _, section := range res.Sections() {
		switch section {
		case SectionPage:
			out.Page = def.Page
		case SectionHeader:
			out.Header = def.Header
		case SectionCustomerBlock:
			out.CustomerBlock = def.CustomerBlock
		case SectionLineTable:
			out.LineTable = def.LineTable
		case SectionTotals:
			out.Totals = def.Totals
		case SectionNotes:
			out.Notes = def.Notes
		default:
			out = def
		}
		defects = append(defects, &SchemaDefectError{Section: section, Problems: bySection[section]})
	}
	return out, defects
}
