// Package mapping convierte un registro comercial y el perfil de la empresa en
// el conjunto plano de valores que consume una plantilla.
package mapping

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/docengine/internal/domain/calc"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/internal/domain/terms"
	"github.com/jhoicas/docengine/pkg/locale"
)

// DocumentInput entrada de una pasada de renderizado. Transitoria: se
// reconstruye en cada render y nunca se persiste.
type DocumentInput struct {
	Fields   map[string]string
	Table    [][]string // fila 0 = cabecera
	Columns  []string   // clave de cada columna de Table
	Align    []doctemplate.Alignment
	NoItems  bool
	Totals   calc.DocumentTotals
	Currency string
	Locale   string
	IssuedAt time.Time
}

// Field valor de un campo ("" si no existe).
func (in DocumentInput) Field(key string) string { return in.Fields[key] }

// Keys claves de Fields ordenadas.
func (in DocumentInput) Keys() []string {
	keys := make([]string, 0, len(in.Fields))
	for k := range in.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Config valores por defecto del mapeador.
type Config struct {
	Now             func() time.Time
	DefaultLocale   string
	DefaultCurrency string
}

// Mapper construye DocumentInput. Sin estado mutable: el único reloj es Now.
type Mapper struct {
	now             func() time.Time
	defaultLocale   string
	defaultCurrency string
}

// NewMapper construye el mapeador.
func NewMapper(cfg Config) *Mapper {
	m := &Mapper{now: cfg.Now, defaultLocale: cfg.DefaultLocale, defaultCurrency: cfg.DefaultCurrency}
	if m.now == nil {
		m.now = time.Now
	}
	if m.defaultLocale == "" {
		m.defaultLocale = locale.Default
	}
	if m.defaultCurrency == "" {
		m.defaultCurrency = "TRY"
	}
	return m
}

// MapRecordToInputs aplica el esquema al registro. Devuelve *calc.CalculationError
// (envuelto con el número de línea) si alguna línea tiene valores inválidos.
func (m *Mapper) MapRecordToInputs(
	rec *entity.BusinessRecord,
	company *entity.CompanyProfile,
	schema doctemplate.Schema,
) (DocumentInput, error) {
	return m.mapRecord(rec, company, schema, "")
}

// MapForTemplate como MapRecordToInputs con el esquema de la plantilla. El
// idioma sale del registro, luego de la plantilla y por último del valor por
// defecto.
func (m *Mapper) MapForTemplate(
	rec *entity.BusinessRecord,
	company *entity.CompanyProfile,
	tmpl doctemplate.Template,
) (DocumentInput, error) {
	return m.mapRecord(rec, company, tmpl.Schema, tmpl.Locale)
}

func (m *Mapper) mapRecord(
	rec *entity.BusinessRecord,
	company *entity.CompanyProfile,
	schema doctemplate.Schema,
	tmplLocale string,
) (DocumentInput, error) {
	if rec == nil {
		return DocumentInput{}, &ValidationError{Problems: []Problem{{Field: "record", Message: "registro requerido"}}}
	}

	in := DocumentInput{
		Fields:   make(map[string]string),
		Currency: firstNonEmpty(rec.Currency, m.defaultCurrency),
		Locale:   firstNonEmpty(rec.Locale, tmplLocale, m.defaultLocale),
		IssuedAt: m.now(),
	}

	// ── 1. Totales ───────────────────────────────────────────────────────────
	lineTotals := make([]calc.LineTotals, len(rec.Lines))
	for i, l := range rec.Lines {
		lt, err := calc.ComputeLineTotals(lineInput(l))
		if err != nil {
			return DocumentInput{}, fmt.Errorf("mapping: línea %d: %w", i+1, err)
		}
		lineTotals[i] = lt
	}
	totals, err := calc.ComputeDocumentTotals(lineTotals, adjustments(rec.Adjustments)...)
	if err != nil {
		return DocumentInput{}, fmt.Errorf("mapping: ajustes: %w", err)
	}
	in.Totals = totals

	// ── 2. Campos ────────────────────────────────────────────────────────────
	for k, v := range labelsFor(in.Locale) {
		in.Fields[k] = v
	}
	documentFields(in.Fields, rec, schema, in)
	companyFields(in.Fields, company, schema)
	customerFields(in.Fields, rec.Customer, schema.CustomerBlock)
	totalsFields(in.Fields, schema.Totals, in)
	notesFields(in.Fields, rec, schema.Notes)
	termsFields(in.Fields, rec)

	// ── 3. Tabla ─────────────────────────────────────────────────────────────
	in.Table, in.Columns, in.Align, in.NoItems = m.buildTable(rec.Lines, lineTotals, schema.LineTable, in)
	return in, nil
}

func documentFields(f map[string]string, rec *entity.BusinessRecord, schema doctemplate.Schema, in DocumentInput) {
	f["document.title"] = firstNonEmpty(rec.Title, schema.Header.Title)
	f["document.number"] = firstNonEmpty(rec.Number, rec.ID)
	f["document.type"] = string(rec.Type)
	f["document.date"] = locale.FormatDate(rec.IssueDate, in.Locale)
	f["document.currency"] = in.Currency
	f["document.validUntil"] = ""
	if schema.Header.ShowValidUntil && rec.ValidUntil != nil {
		f["document.validUntil"] = locale.FormatDate(*rec.ValidUntil, in.Locale)
	}
	f["issuedOn"] = locale.FormatDate(in.IssuedAt, in.Locale)
}

var companyKeys = []string{"name", "address", "phone", "email", "website", "taxId", "taxOffice", "logoUrl", "iban"}

func companyFields(f map[string]string, company *entity.CompanyProfile, schema doctemplate.Schema) {
	for _, k := range companyKeys {
		f["company."+k] = resolveCompanyField(company, k)
	}
	f["header.logoUrl"] = ""
	if schema.Header.ShowLogo {
		f["header.logoUrl"] = firstNonEmpty(schema.Header.LogoURL, resolveCompanyField(company, "logoUrl"))
	}
}

func customerFields(f map[string]string, c *entity.Customer, block doctemplate.CustomerBlock) {
	if !block.Visible {
		return
	}
	for _, field := range block.Fields {
		f["customer."+string(field)] = resolveCustomerField(c, field)
	}
}

func totalsFields(f map[string]string, show doctemplate.Totals, in DocumentInput) {
	t := in.Totals
	money := func(d decimal.Decimal) string { return formatMoney(d, in) }
	if show.ShowGross {
		f["totals.gross"] = money(t.Subtotal)
	}
	if show.ShowDiscount {
		f["totals.discount"] = money(t.DiscountAmount)
		if !t.RecordDiscount.IsZero() {
			f["totals.recordDiscount"] = money(t.RecordDiscount)
		}
	}
	if show.ShowTax {
		f["totals.tax"] = money(t.TaxAmount)
	}
	if show.ShowNet {
		if !t.RecordSurcharge.IsZero() {
			f["totals.surcharge"] = money(t.RecordSurcharge)
		}
		f["totals.net"] = money(t.GrandTotal)
	}
}

func notesFields(f map[string]string, rec *entity.BusinessRecord, notes doctemplate.Notes) {
	f["notes.intro"] = notes.Intro
	f["notes.footer"] = notes.Footer
	f["notes.record"] = strings.TrimSpace(rec.Notes)
	for _, cf := range notes.CustomFields {
		f["custom."+cf.ID] = cf.Text
		f["custom."+cf.ID+".label"] = cf.Label
	}
}

func termsFields(f map[string]string, rec *entity.BusinessRecord) {
	selected := make(map[terms.Category][]string, len(rec.SelectedTerms))
	for cat, ids := range rec.SelectedTerms {
		selected[terms.Category(cat)] = ids
	}
	custom := make(map[terms.Category]string, len(rec.CustomTerms))
	for cat, txt := range rec.CustomTerms {
		custom[terms.Category(cat)] = txt
	}

	sections := terms.FormatSelectedTerms(selected, custom)
	for cat, s := range sections {
		f["terms."+string(cat)+".title"] = s.Title
		f["terms."+string(cat)] = strings.Join(s.Terms, "\n")
	}
	f["terms.text"] = terms.FormatSelectedTermsAsText(selected, custom)
}

func lineInput(l entity.LineItem) calc.LineInput {
	return calc.LineInput{
		Quantity:     resolveAmount(l.Quantity),
		UnitPrice:    resolveAmount(l.UnitPrice),
		DiscountRate: l.DiscountRate,
		TaxRate:      l.TaxRate,
	}
}

func adjustments(in []entity.Adjustment) []calc.Adjustment {
	out := make([]calc.Adjustment, 0, len(in))
	for _, a := range in {
		out = append(out, calc.Adjustment{Kind: calc.AdjustmentKind(a.Kind), Amount: a.Amount, Rate: a.Rate})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
