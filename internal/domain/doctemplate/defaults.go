package doctemplate

import (
	"encoding/json"
	"fmt"
)

// DefaultFontSize tamaño base cuando el esquema no define uno.
const DefaultFontSize = 9

// DefaultSchema esquema base usado por las plantillas fijas y como respaldo
// seguro de secciones inválidas.
func DefaultSchema() Schema {
	return Schema{
		Page: Page{
			Size:         PageA4,
			Padding:      Padding{Top: 10, Right: 10, Bottom: 10, Left: 10},
			BaseFontSize: DefaultFontSize,
			BasePDF:      BlankCanvas,
		},
		Header: Header{ShowLogo: true, Title: "TEKLİF", ShowValidUntil: true},
		CustomerBlock: CustomerBlock{
			Visible: true,
			Fields: []CustomerField{
				CustomerName, CustomerCompany, CustomerContactPerson,
				CustomerEmail, CustomerPhone, CustomerAddress,
			},
		},
		LineTable: LineTable{Columns: []Column{
			{Key: ColumnPosition, Label: "#", Visible: true, Align: AlignCenter},
			{Key: ColumnDescription, Label: "Açıklama", Visible: true, Align: AlignLeft},
			{Key: ColumnQuantity, Label: "Miktar", Visible: true, Align: AlignRight},
			{Key: ColumnUnit, Label: "Birim", Visible: true, Align: AlignCenter},
			{Key: ColumnUnitPrice, Label: "Birim Fiyat", Visible: true, Align: AlignRight},
			{Key: ColumnDiscountRate, Label: "İndirim", Visible: true, Align: AlignRight},
			{Key: ColumnTaxRate, Label: "KDV", Visible: true, Align: AlignRight},
			{Key: ColumnTotal, Label: "Toplam", Visible: true, Align: AlignRight},
		}},
		Totals: Totals{ShowGross: true, ShowDiscount: true, ShowTax: true, ShowNet: true},
	}
}

// ParseSchema decodifica un design_settings JSON sobre DefaultSchema, de modo
// que las claves ausentes conservan su valor por defecto. Las listas se
// reemplazan enteras: un elemento presente parte de su valor cero, nunca del
// elemento por defecto en la misma posición. Las claves desconocidas se
// ignoran.
func ParseSchema(data []byte) (Schema, error) {
	def := DefaultSchema()
	if len(data) == 0 || string(data) == "null" {
		return def, nil
	}

	s := DefaultSchema()
	s.CustomerBlock.Fields = nil
	s.LineTable.Columns = nil
	s.Notes.CustomFields = nil
	if err := json.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("doctemplate: decodificar design_settings: %w", err)
	}

	if s.CustomerBlock.Fields == nil {
		s.CustomerBlock.Fields = def.CustomerBlock.Fields
	}
	if s.LineTable.Columns == nil {
		s.LineTable.Columns = def.LineTable.Columns
	}
	if s.Notes.CustomFields == nil {
		s.Notes.CustomFields = def.Notes.CustomFields
	}
	return s, nil
}
