package doctemplate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Secciones del esquema.
const (
	SectionPage          = "page"
	SectionHeader        = "header"
	SectionCustomerBlock = "customerBlock"
	SectionLineTable     = "lineTable"
	SectionTotals        = "totals"
	SectionNotes         = "notes"
)

// Problem defecto puntual detectado al validar un esquema.
type Problem struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Value   string `json:"value,omitempty"`
}

func (p Problem) String() string {
	if p.Value == "" {
		return fmt.Sprintf("%s.%s: %s", p.Section, p.Field, p.Rule)
	}
	return fmt.Sprintf("%s.%s: %s (%s)", p.Section, p.Field, p.Rule, p.Value)
}

// ValidationResult resultado de ValidateSchema. Es consultivo: el pipeline
// sustituye secciones inválidas en lugar de abortar.
type ValidationResult struct {
	Problems []Problem `json:"problems"`
}

// Valid informa si no hubo problemas.
func (r ValidationResult) Valid() bool { return len(r.Problems) == 0 }

// Sections secciones con al menos un problema, en orden de aparición.
func (r ValidationResult) Sections() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range r.Problems {
		if !seen[p.Section] {
			seen[p.Section] = true
			out = append(out, p.Section)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres JSON en los errores para que coincidan con design_settings.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSchema revisa el esquema y devuelve todos los problemas encontrados:
// márgenes no negativos, claves de columna únicas, posiciones de campos
// personalizados y tamaño de página soportados.
func ValidateSchema(s Schema) ValidationResult {
	err := validate.Struct(s)
	if err == nil {
		return ValidationResult{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationResult{Problems: []Problem{{Section: "schema", Field: "", Rule: err.Error()}}}
	}

	res := ValidationResult{Problems: make([]Problem, 0, len(verrs))}
	for _, fe := range verrs {
		section, field := splitNamespace(fe.Namespace())
		p := Problem{Section: section, Field: field, Rule: rule(fe)}
		if fe.Tag() == "unique" {
			p.Value = strings.Join(duplicateKeys(s.LineTable.Columns), ",")
		} else {
			p.Value = fmt.Sprint(fe.Value())
		}
		res.Problems = append(res.Problems, p)
	}
	return res
}

// splitNamespace "Schema.page.padding.top" -> ("page", "padding.top").
func splitNamespace(ns string) (string, string) {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	section, field, _ := strings.Cut(ns, ".")
	if j := strings.IndexByte(section, '['); j >= 0 {
		section = section[:j]
	}
	return section, field
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func duplicateKeys(cols []Column) []string {
	seen := make(map[string]int, len(cols))
	var dups []string
	for _, c := range cols {
		seen[c.Key]++
		if seen[c.Key] == 2 {
			dups = append(dups, c.Key)
		}
	}
	return dups
}
