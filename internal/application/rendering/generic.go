package rendering

import (
	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// GenericLayout composición dirigida por el esquema:
//
//	┌──────────────────────────────────────────────┐
//	│ LOGO │ Empresa + NIF     │ Título / Nº / Fecha │
//	│ ──────────────────────────────────────────── │
//	│ Cliente (campos pedidos)                     │
//	│ Intro · campos "before-table"                │
//	│ TABLA de líneas                              │
//	│ campos "after-table" · Totales               │
//	│ Condiciones por categoría · Notas            │
//	│ ──────────────────────────────────────────── │
//	│ Pie · campos "footer" · Fecha de emisión     │
//	└──────────────────────────────────────────────┘
func GenericLayout(tmpl doctemplate.Template, in mapping.DocumentInput) Document {
	b := newBuilder(tmpl, in)

	b.header(in)
	b.customFields(tmpl, in, doctemplate.PositionHeader)
	b.line(colorPrimary)

	if tmpl.Schema.CustomerBlock.Visible {
		b.customer(tmpl.Schema.CustomerBlock, in)
		b.line(colorPrimary)
	}

	b.text(in.Field("notes.intro"), Style{})
	b.customFields(tmpl, in, doctemplate.PositionBeforeTable)
	b.space(2)

	b.table(in)
	b.line(colorPrimary)
	b.customFields(tmpl, in, doctemplate.PositionAfterTable)
	b.totals(in, b.grid/4)
	b.space(3)

	b.conditions(in)
	if notes := in.Field("notes.record"); notes != "" {
		b.text(in.Field("label.notes"), Style{Bold: true, Color: colorPrimary})
		b.text(notes, Style{Size: b.fontSize - 1})
	}

	b.space(3)
	b.line(colorGray)
	b.text(in.Field("notes.footer"), Style{Size: b.fontSize - 2, Color: colorGray})
	b.customFields(tmpl, in, doctemplate.PositionFooter)
	b.text(in.Field("label.issuedOn")+": "+in.Field("issuedOn"), Style{
		Size: b.fontSize - 2, Color: colorGray, Align: doctemplate.AlignRight,
	})

	return b.document(tmpl, in)
}

// header logo opcional, datos de la empresa y datos del documento.
func (b *builder) header(in mapping.DocumentInput) {
	var cols []Col
	nameSpan := b.grid * 7 / 12
	if logo := in.Field("header.logoUrl"); logo != "" {
		logoSpan := b.grid / 4
		cols = append(cols, Col{Span: logoSpan, Items: []Item{{Kind: ItemImage, Source: logo}}})
		nameSpan -= logoSpan
	}

	company := []Item{text(in.Field("company.name"), Style{Size: b.fontSize + 4, Bold: true, Color: colorPrimary, Top: 1})}
	top := b.fontSize/2 + 5
	for _, k := range []string{"company.address", "company.taxId", "company.phone", "company.email"} {
		if v := in.Field(k); v != "" {
			company = append(company, text(v, Style{Size: b.fontSize - 1, Color: colorGray, Top: top}))
			top += rowHeight(b.fontSize - 1)
		}
	}
	cols = append(cols, Col{Span: nameSpan, Items: company})

	right := doctemplate.AlignRight
	doc := []Item{
		text(in.Field("document.title"), Style{Size: b.fontSize + 3, Bold: true, Align: right, Color: colorPrimary, Top: 1}),
		text(in.Field("label.document.number")+": "+in.Field("document.number"), Style{Size: b.fontSize, Bold: true, Align: right, Top: 9}),
		text(in.Field("label.document.date")+": "+in.Field("document.date"), Style{Size: b.fontSize - 1, Align: right, Color: colorGray, Top: 14}),
	}
	if v := in.Field("document.validUntil"); v != "" {
		doc = append(doc, text(in.Field("label.document.validUntil")+": "+v, Style{
			Size: b.fontSize - 1, Align: right, Color: colorGray, Top: 18,
		}))
	}
	cols = append(cols, Col{Span: b.grid - b.grid*7/12, Items: doc})

	b.add(Row{Height: 24, Cols: cols})
}

// customer una línea "etiqueta: valor" por campo pedido con valor.
func (b *builder) customer(block doctemplate.CustomerBlock, in mapping.DocumentInput) {
	b.text(in.Field("label.customer"), Style{Bold: true, Color: colorPrimary})
	for _, f := range block.Fields {
		v := in.Field("customer." + string(f))
		if v == "" {
			continue
		}
		b.text(in.Field("label.customer."+string(f))+": "+v, Style{})
	}
}
