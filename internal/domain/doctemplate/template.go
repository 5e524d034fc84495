package doctemplate

import (
	"time"

	"github.com/jhoicas/docengine/internal/domain/entity"
)

// Kind origen de la plantilla.
type Kind string

const (
	// KindFixed plantilla incluida en el binario, inmutable.
	KindFixed Kind = "fixed"
	// KindCustom plantilla creada por usuarios y persistida externamente.
	KindCustom Kind = "custom"
)

// Claves de composición.
const (
	// LayoutGeneric composición dirigida solo por el esquema.
	LayoutGeneric = "generic"
	// LayoutCompact composición en código de una sola página, sin bloque de
	// empresa detallado.
	LayoutCompact = "compact"
)

// Template identidad de una plantilla más su esquema.
//
// Kind y Layout forman la variante: las plantillas fijas pueden estar ligadas a
// una composición en código (Layout); las personalizadas usan siempre la
// composición genérica.
type Template struct {
	ID          string
	Name        string
	Description string
	Type        entity.DocumentType
	Locale      string
	Schema      Schema
	Version     int
	IsDefault   bool
	Kind        Kind
	Layout      string
	CreatedAt   time.Time
}

// LayoutKey composición a usar para esta plantilla.
func (t Template) LayoutKey() string {
	if t.Kind == KindFixed && t.Layout != "" {
		return t.Layout
	}
	return LayoutGeneric
}

// Clone copia profunda; los slices del esquema no se comparten con el original.
func (t Template) Clone() Template {
	out := t
	out.Schema.CustomerBlock.Fields = append([]CustomerField(nil), t.Schema.CustomerBlock.Fields...)
	out.Schema.LineTable.Columns = append([]Column(nil), t.Schema.LineTable.Columns...)
	out.Schema.Notes.CustomFields = append([]CustomTextField(nil), t.Schema.Notes.CustomFields...)
	return out
}
