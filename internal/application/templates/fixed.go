package templates

import (
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
)

// FixedPrefix prefijo reservado para ids de plantillas fijas.
const FixedPrefix = "fixed:"

// Ids estables de las plantillas fijas.
const (
	FixedClassicID = FixedPrefix + "classic"
	FixedCompactID = FixedPrefix + "compact"
	FixedInvoiceID = FixedPrefix + "invoice"
)

// fixedTemplates plantillas incluidas, en orden de listado. La primera es el
// valor por defecto cuando ninguna personalizada está marcada.
func fixedTemplates() []doctemplate.Template {
	classic := doctemplate.DefaultSchema()

	compact := doctemplate.DefaultSchema()
	compact.Page.BaseFontSize = 8
	compact.Page.Padding = doctemplate.Padding{Top: 8, Right: 8, Bottom: 8, Left: 8}
	compact.Header.Title = "TEKLİF"
	compact.CustomerBlock.Fields = []doctemplate.CustomerField{
		doctemplate.CustomerName, doctemplate.CustomerCompany, doctemplate.CustomerEmail,
	}
	compact.LineTable.Columns = []doctemplate.Column{
		{Key: doctemplate.ColumnDescription, Label: "Açıklama", Visible: true, Align: doctemplate.AlignLeft},
		{Key: doctemplate.ColumnQuantity, Label: "Miktar", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnUnitPrice, Label: "Birim Fiyat", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnTotal, Label: "Toplam", Visible: true, Align: doctemplate.AlignRight},
	}
	compact.Totals = doctemplate.Totals{ShowTax: true, ShowNet: true}

	invoice := doctemplate.DefaultSchema()
	invoice.Header.Title = "FATURA"
	invoice.Header.ShowValidUntil = false
	invoice.CustomerBlock.Fields = []doctemplate.CustomerField{
		doctemplate.CustomerCompany, doctemplate.CustomerName, doctemplate.CustomerAddress,
		doctemplate.CustomerTaxOffice, doctemplate.CustomerTaxID,
	}
	invoice.LineTable.Columns = []doctemplate.Column{
		{Key: doctemplate.ColumnPosition, Label: "#", Visible: true, Align: doctemplate.AlignCenter},
		{Key: doctemplate.ColumnCode, Label: "Kod", Visible: true, Align: doctemplate.AlignLeft},
		{Key: doctemplate.ColumnDescription, Label: "Açıklama", Visible: true, Align: doctemplate.AlignLeft},
		{Key: doctemplate.ColumnQuantity, Label: "Miktar", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnUnitPrice, Label: "Birim Fiyat", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnDiscountAmount, Label: "İndirim", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnTaxRate, Label: "KDV %", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnTaxAmount, Label: "KDV Tutarı", Visible: true, Align: doctemplate.AlignRight},
		{Key: doctemplate.ColumnTotal, Label: "Toplam", Visible: true, Align: doctemplate.AlignRight},
	}

	return []doctemplate.Template{
		{
			ID: FixedClassicID, Name: "Klasik Teklif", Description: "Logo, müşteri bloğu ve tam kalem tablosu",
			Type: entity.DocumentQuote, Locale: "tr", Schema: classic, Version: 1,
			Kind: doctemplate.KindFixed, Layout: doctemplate.LayoutGeneric,
		},
		{
			ID: FixedCompactID, Name: "Kompakt Teklif", Description: "Tek sayfalık sade teklif",
			Type: entity.DocumentProposal, Locale: "tr", Schema: compact, Version: 1,
			Kind: doctemplate.KindFixed, Layout: doctemplate.LayoutCompact,
		},
		{
			ID: FixedInvoiceID, Name: "Fatura", Description: "Vergi bilgili fatura düzeni",
			Type: entity.DocumentInvoice, Locale: "tr", Schema: invoice, Version: 1,
			Kind: doctemplate.KindFixed, Layout: doctemplate.LayoutGeneric,
		},
	}
}
