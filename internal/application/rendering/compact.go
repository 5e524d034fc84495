package rendering

import (
	"strings"

	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// CompactLayout composición de una página: título y número en una sola fila,
// cliente en una línea, tabla y total. Sin logo ni bloque de empresa.
func CompactLayout(tmpl doctemplate.Template, in mapping.DocumentInput) Document {
	b := newBuilder(tmpl, in)
	half := b.grid / 2

	b.add(Row{Height: rowHeight(b.fontSize+4) + 2, Cols: []Col{
		{Span: half, Items: []Item{text(in.Field("document.title"), Style{Size: b.fontSize + 4, Bold: true, Color: colorPrimary, Top: 1})}},
		{Span: b.grid - half, Items: []Item{text(
			in.Field("document.number")+"  ·  "+in.Field("document.date"),
			Style{Size: b.fontSize, Align: doctemplate.AlignRight, Top: 2},
		)}},
	}})
	b.text(in.Field("company.name"), Style{Size: b.fontSize - 1, Color: colorGray})
	b.line(colorPrimary)

	if tmpl.Schema.CustomerBlock.Visible {
		var parts []string
		for _, f := range tmpl.Schema.CustomerBlock.Fields {
			if v := in.Field("customer." + string(f)); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			b.text(in.Field("label.customer")+": "+strings.Join(parts, " · "), Style{})
		}
	}
	b.customFields(tmpl, in, doctemplate.PositionHeader)
	b.customFields(tmpl, in, doctemplate.PositionBeforeTable)
	b.space(2)

	b.table(in)
	b.line(colorPrimary)
	b.customFields(tmpl, in, doctemplate.PositionAfterTable)
	b.totals(in, b.grid/3)
	b.space(2)

	if txt := in.Field("terms.text"); txt != "" {
		b.text(txt, Style{Size: b.fontSize - 1})
	}
	b.text(in.Field("notes.record"), Style{Size: b.fontSize - 1, Italic: true})
	b.text(in.Field("notes.footer"), Style{Size: b.fontSize - 2, Color: colorGray})
	b.customFields(tmpl, in, doctemplate.PositionFooter)

	return b.document(tmpl, in)
}
