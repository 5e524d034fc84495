package rendering

import (
	"strings"

	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/terms"
)

// Layout compone el árbol de página. Debe ser una función pura de sus
// argumentos: sin reloj, sin E/S.
type Layout interface {
	Compose(tmpl doctemplate.Template, in mapping.DocumentInput) Document
}

// LayoutFunc adapta una función a Layout.
type LayoutFunc func(tmpl doctemplate.Template, in mapping.DocumentInput) Document

// Compose implementa Layout.
func (f LayoutFunc) Compose(tmpl doctemplate.Template, in mapping.DocumentInput) Document {
	return f(tmpl, in)
}

// DefaultLayouts composiciones registradas por clave.
func DefaultLayouts() map[string]Layout {
	return map[string]Layout{
		doctemplate.LayoutGeneric: LayoutFunc(GenericLayout),
		doctemplate.LayoutCompact: LayoutFunc(CompactLayout),
	}
}

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &Color{R: 0, G: 70, B: 127}
	colorGray    = &Color{R: 100, G: 100, B: 100}
	colorWhite   = &Color{R: 255, G: 255, B: 255}
)

// ── Builder ───────────────────────────────────────────────────────────────────

// builder acumula filas sobre una grilla de ancho fijo.
type builder struct {
	grid     int
	fontSize float64
	rows     []Row
}

// newBuilder la grilla se amplía si la tabla ya mapeada tiene más columnas
// que GridSize.
func newBuilder(tmpl doctemplate.Template, in mapping.DocumentInput) *builder {
	grid := GridSize
	if len(in.Table) > 0 && len(in.Table[0]) > grid {
		grid = len(in.Table[0])
	}
	size := tmpl.Schema.Page.BaseFontSize
	if size <= 0 {
		size = doctemplate.DefaultFontSize
	}
	return &builder{grid: grid, fontSize: size}
}

func (b *builder) add(rows ...Row) { b.rows = append(b.rows, rows...) }

func (b *builder) line(c *Color) {
	b.add(Row{Height: 1, Cols: []Col{{Span: b.grid, Items: []Item{{Kind: ItemLine, Style: Style{Color: c}}}}}})
}

func (b *builder) space(h float64) {
	b.add(Row{Height: h, Cols: []Col{{Span: b.grid, Items: []Item{{Kind: ItemSpacer}}}}})
}

// text agrega una fila por línea de s a todo el ancho. Las líneas vacías de
// los extremos se descartan.
func (b *builder) text(s string, st Style) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if st.Size <= 0 {
		st.Size = b.fontSize
	}
	for _, l := range strings.Split(s, "\n") {
		b.add(Row{Height: rowHeight(st.Size), Cols: []Col{{Span: b.grid, Items: []Item{text(l, st)}}}})
	}
}

func (b *builder) document(tmpl doctemplate.Template, in mapping.DocumentInput) Document {
	page := tmpl.Schema.Page
	bg := ""
	if !page.IsBlankCanvas() {
		bg = page.BasePDF
	}
	return Document{
		Title:     in.Field("document.title") + " " + in.Field("document.number"),
		Author:    in.Field("company.name"),
		CreatedAt: in.IssuedAt,
		GridSize:  b.grid,
		Page: PageSetup{
			Size:       page.Size,
			Padding:    page.Padding,
			FontSize:   b.fontSize,
			Background: bg,
		},
		Rows: b.rows,
	}
}

func text(s string, st Style) Item { return Item{Kind: ItemText, Text: s, Style: st} }

// rowHeight alto de una línea de texto en mm para un tamaño en puntos.
func rowHeight(size float64) float64 { return size*0.5 + 1 }

// ── Bloques compartidos ───────────────────────────────────────────────────────

// customFields campos personalizados de una posición con su estilo propio.
func (b *builder) customFields(tmpl doctemplate.Template, in mapping.DocumentInput, pos doctemplate.FieldPosition) {
	for _, f := range tmpl.Schema.Notes.FieldsAt(pos) {
		body := in.Field("custom." + f.ID)
		if label := in.Field("custom." + f.ID + ".label"); label != "" && body != "" {
			body = label + ": " + body
		}
		b.text(body, Style{
			Size: f.Style.FontSize, Bold: f.Style.Bold, Italic: f.Style.Italic, Align: f.Style.Align,
		})
	}
}

// table cabecera resaltada y una fila por línea, con anchos repartidos sobre
// la grilla y el sobrante para la descripción. La geometría sale de la tabla
// mapeada, no del esquema: la cabecera fija el número de columnas y las filas
// se recortan o completan a ese ancho.
func (b *builder) table(in mapping.DocumentInput) {
	if len(in.Table) == 0 || len(in.Table[0]) == 0 {
		return
	}
	n := len(in.Table[0])
	spans := columnSpans(in.Columns, n, b.grid)
	size := b.fontSize - 1
	h := rowHeight(size) + 1

	cells := func(values []string, st Style, fill *Color) []Col {
		cols := make([]Col, n)
		for i := range cols {
			cs := st
			if i < len(in.Align) {
				cs.Align = in.Align[i]
			}
			v := ""
			if i < len(values) {
				v = values[i]
			}
			cols[i] = Col{Span: spans[i], Fill: fill, Items: []Item{text(v, cs)}}
		}
		return cols
	}

	b.add(Row{Height: h, Cols: cells(in.Table[0], Style{Size: size, Bold: true, Color: colorWhite, Top: 1}, colorPrimary)})
	for _, r := range in.Table[1:] {
		b.add(Row{Height: h, Cols: cells(r, Style{Size: size, Top: 1}, nil)})
	}
}

var totalsOrder = []string{"gross", "discount", "recordDiscount", "tax", "surcharge", "net"}

// totals filas presentes en DocumentInput, alineadas a la derecha.
func (b *builder) totals(in mapping.DocumentInput, labelSpan int) {
	valueSpan := b.grid / 4
	pad := b.grid - labelSpan - valueSpan
	for _, k := range totalsOrder {
		v, ok := in.Fields["totals."+k]
		if !ok {
			continue
		}
		st := Style{Size: b.fontSize, Align: doctemplate.AlignRight}
		if k == "net" {
			st.Bold = true
			st.Size = b.fontSize + 1
			st.Color = colorPrimary
		}
		lbl := st
		lbl.Bold = true
		b.add(Row{Height: rowHeight(st.Size) + 1, Cols: []Col{
			{Span: pad},
			{Span: labelSpan, Items: []Item{text(in.Field("label.totals."+k)+":", lbl)}},
			{Span: valueSpan, Items: []Item{text(v, st)}},
		}})
	}
}

// conditions una sección por categoría con cláusulas, en orden de catálogo.
func (b *builder) conditions(in mapping.DocumentInput) {
	for _, cat := range terms.Categories() {
		body := in.Field("terms." + string(cat))
		if body == "" {
			continue
		}
		b.text(in.Field("terms."+string(cat)+".title"), Style{Bold: true, Color: colorPrimary})
		b.text(body, Style{Size: b.fontSize - 1})
		b.space(1)
	}
}

// columnSpans reparte grid entre n columnas; el resto va a la descripción
// (o a la primera columna si no hay descripción). keys puede ser más corto
// que n.
func columnSpans(keys []string, n, grid int) []int {
	spans := make([]int, n)
	if n == 0 {
		return spans
	}
	base := grid / n
	rest := grid - base*n
	wide := 0
	for i := range spans {
		spans[i] = base
		if i < len(keys) && keys[i] == doctemplate.ColumnDescription {
			wide = i
		}
	}
	spans[wide] += rest
	return spans
}
