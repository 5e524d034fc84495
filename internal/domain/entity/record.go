package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento comercial.
type DocumentType string

const (
	DocumentQuote    DocumentType = "quote"
	DocumentInvoice  DocumentType = "invoice"
	DocumentProposal DocumentType = "proposal"
)

// Valid informa si el tipo es uno de los soportados.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentQuote, DocumentInvoice, DocumentProposal:
		return true
	}
	return false
}

// LineItem línea con precio de un registro comercial.
// Las columnas NULL de la base llegan como NullDecimal inválido.
type LineItem struct {
	ID           string
	Position     int
	Code         string
	Description  string
	Unit         string
	Quantity     decimal.NullDecimal
	UnitPrice    decimal.NullDecimal
	DiscountRate decimal.NullDecimal
	TaxRate      decimal.NullDecimal
}

// AdjustmentKind discount | surcharge.
type AdjustmentKind string

const (
	AdjustmentDiscount  AdjustmentKind = "discount"
	AdjustmentSurcharge AdjustmentKind = "surcharge"
)

// Adjustment descuento o recargo a nivel de documento.
type Adjustment struct {
	Kind   AdjustmentKind
	Label  string
	Amount decimal.NullDecimal
	Rate   decimal.NullDecimal
}

// BusinessRecord cotización, propuesta o factura con sus líneas.
type BusinessRecord struct {
	ID            string
	Number        string
	Type          DocumentType
	Title         string
	Currency      string // ISO 4217
	Locale        string // BCP 47, ej. "tr", "en"
	IssueDate     time.Time
	ValidUntil    *time.Time
	Customer      *Customer
	Lines         []LineItem
	Adjustments   []Adjustment
	SelectedTerms map[string][]string // categoría -> ids de cláusula
	CustomTerms   map[string]string   // categoría -> texto libre
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
