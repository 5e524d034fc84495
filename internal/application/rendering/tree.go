// Package rendering compone el árbol de página de un documento a partir de una
// plantilla y su DocumentInput, lo codifica con un Encoder y lo entrega en uno
// de los modos de salida (descarga, vista previa o subida).
package rendering

import (
	"time"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// GridSize columnas de la grilla por defecto. Las tablas con más columnas
// visibles amplían la grilla del documento.
const GridSize = 12

// ItemKind tipo de elemento dentro de una columna.
type ItemKind string

const (
	ItemText   ItemKind = "text"
	ItemImage  ItemKind = "image"
	ItemLine   ItemKind = "line"
	ItemSpacer ItemKind = "spacer"
)

// Color RGB.
type Color struct {
	R, G, B int
}

// Style estilo tipográfico de un Item de texto. Top es el desplazamiento
// vertical dentro de la fila, en milímetros.
type Style struct {
	Size   float64
	Bold   bool
	Italic bool
	Align  doctemplate.Alignment
	Color  *Color
	Top    float64
}

// Item elemento hoja. Source es la URL o ruta de una imagen.
type Item struct {
	Kind   ItemKind
	Text   string
	Style  Style
	Source string
}

// Col columna con ancho en unidades de grilla. Fill pinta el fondo de la celda.
type Col struct {
	Span  int
	Fill  *Color
	Items []Item
}

// Row fila con alto fijo en milímetros.
type Row struct {
	Height float64
	Cols   []Col
}

// PageSetup geometría y fondo de página. Background vacío significa lienzo en
// blanco del codificador.
type PageSetup struct {
	Size       doctemplate.PageSize
	Padding    doctemplate.Padding
	FontSize   float64
	Background string
}

// Document árbol de página totalmente resuelto; es la única entrada del Encoder.
type Document struct {
	Title     string
	Author    string
	CreatedAt time.Time
	GridSize  int
	Page      PageSetup
	Rows      []Row
}
