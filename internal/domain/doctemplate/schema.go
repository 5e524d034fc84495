// Package doctemplate modela el esquema declarativo de plantillas de documento
// (design_settings) y su validación.
//
// Un Schema es solo configuración: textos, etiquetas, banderas y posiciones.
// No contiene datos de negocio ni código.
package doctemplate

// BlankCanvas valor reservado de Page.BasePDF que indica usar la página en
// blanco del codificador en lugar de un fondo propio.
const BlankCanvas = "BLANK_PDF"

// PageSize tamaños de página soportados.
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageA5     PageSize = "A5"
	PageLetter PageSize = "LETTER"
	PageLegal  PageSize = "LEGAL"
)

// Alignment alineación horizontal de texto.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// CustomerField atributo de cliente seleccionable en el bloque de cliente.
type CustomerField string

const (
	CustomerName          CustomerField = "name"
	CustomerCompany       CustomerField = "company"
	CustomerContactPerson CustomerField = "contactPerson"
	CustomerEmail         CustomerField = "email"
	CustomerPhone         CustomerField = "phone"
	CustomerAddress       CustomerField = "address"
	CustomerTaxID         CustomerField = "taxId"
	CustomerTaxOffice     CustomerField = "taxOffice"
)

// FieldPosition ubicación de un campo de texto personalizado.
type FieldPosition string

const (
	PositionHeader      FieldPosition = "header"
	PositionFooter      FieldPosition = "footer"
	PositionBeforeTable FieldPosition = "before-table"
	PositionAfterTable  FieldPosition = "after-table"
)

// Claves de columna de la tabla de líneas reconocidas por el mapeador.
const (
	ColumnPosition       = "position"
	ColumnCode           = "code"
	ColumnDescription    = "description"
	ColumnUnit           = "unit"
	ColumnQuantity       = "quantity"
	ColumnUnitPrice      = "unit_price"
	ColumnDiscountRate   = "discount_rate"
	ColumnTaxRate        = "tax_rate"
	ColumnSubtotal       = "subtotal"
	ColumnDiscountAmount = "discount_amount"
	ColumnTaxAmount      = "tax_amount"
	ColumnTotal          = "total"
)

// Schema raíz del design_settings de una plantilla.
type Schema struct {
	Page          Page          `json:"page"`
	Header        Header        `json:"header"`
	CustomerBlock CustomerBlock `json:"customerBlock"`
	LineTable     LineTable     `json:"lineTable"`
	Totals        Totals        `json:"totals"`
	Notes         Notes         `json:"notes"`
}

// Page geometría de página.
type Page struct {
	Size         PageSize `json:"size" validate:"oneof=A4 A5 LETTER LEGAL"`
	Padding      Padding  `json:"padding"`
	BaseFontSize float64  `json:"baseFontSize" validate:"gte=0"`
	BasePDF      string   `json:"basePdf"`
}

// Padding márgenes en milímetros.
type Padding struct {
	Top    float64 `json:"top" validate:"gte=0"`
	Right  float64 `json:"right" validate:"gte=0"`
	Bottom float64 `json:"bottom" validate:"gte=0"`
	Left   float64 `json:"left" validate:"gte=0"`
}

// Header cabecera del documento.
type Header struct {
	ShowLogo       bool   `json:"showLogo"`
	LogoURL        string `json:"logoUrl"`
	Title          string `json:"title"`
	ShowValidUntil bool   `json:"showValidUntil"`
}

// CustomerBlock bloque de datos del cliente.
type CustomerBlock struct {
	Visible bool            `json:"visible"`
	Fields  []CustomerField `json:"fields" validate:"dive,oneof=name company contactPerson email phone address taxId taxOffice"`
}

// LineTable columnas de la tabla de líneas, en orden de presentación.
type LineTable struct {
	Columns []Column `json:"columns" validate:"unique=Key,dive"`
}

// Column descriptor de columna.
type Column struct {
	Key     string    `json:"key" validate:"required"`
	Label   string    `json:"label"`
	Visible bool      `json:"visible"`
	Align   Alignment `json:"align" validate:"omitempty,oneof=left center right"`
}

// Totals visibilidad de cada fila del bloque de totales.
type Totals struct {
	ShowGross    bool `json:"showGross"`
	ShowDiscount bool `json:"showDiscount"`
	ShowTax      bool `json:"showTax"`
	ShowNet      bool `json:"showNet"`
}

// Notes textos libres del documento.
type Notes struct {
	Intro        string            `json:"intro"`
	Footer       string            `json:"footer"`
	CustomFields []CustomTextField `json:"customTextFields" validate:"dive"`
}

// CustomTextField campo de texto personalizado con posición y estilo.
type CustomTextField struct {
	ID       string        `json:"id" validate:"required"`
	Label    string        `json:"label"`
	Text     string        `json:"text"`
	Position FieldPosition `json:"position" validate:"oneof=header footer before-table after-table"`
	Style    TextStyle     `json:"style"`
}

// TextStyle estilo opcional de un campo personalizado.
type TextStyle struct {
	FontSize float64   `json:"fontSize" validate:"gte=0"`
	Bold     bool      `json:"bold"`
	Italic   bool      `json:"italic"`
	Align    Alignment `json:"align" validate:"omitempty,oneof=left center right"`
}

// VisibleColumns columnas visibles en orden de esquema.
func (t LineTable) VisibleColumns() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// FieldsAt campos personalizados de una posición, en orden de esquema.
func (n Notes) FieldsAt(pos FieldPosition) []CustomTextField {
	var out []CustomTextField
	for _, f := range n.CustomFields {
		if f.Position == pos {
			out = append(out, f)
		}
	}
	return out
}

// IsBlankCanvas informa si la página usa el lienzo en blanco del codificador.
func (p Page) IsBlankCanvas() bool {
	return p.BasePDF == "" || p.BasePDF == BlankCanvas
}
