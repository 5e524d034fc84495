package mapping_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/domain/calc"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)

func newMapper() *mapping.Mapper {
	return mapping.NewMapper(mapping.Config{
		Now:             func() time.Time { return fixedNow },
		DefaultLocale:   "tr",
		DefaultCurrency: "TRY",
	})
}

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

func sampleRecord() *entity.BusinessRecord {
	valid := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &entity.BusinessRecord{
		ID:         "rec-1",
		Number:     "TKL-2024-001",
		Type:       entity.DocumentQuote,
		Currency:   "TRY",
		Locale:     "tr",
		IssueDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: &valid,
		Customer:   &entity.Customer{Name: "Ayşe Yılmaz", Company: "Yılmaz Ltd.", Email: "ayse@example.com"},
		Lines: []entity.LineItem{{
			Description: "Danışmanlık", Unit: "saat",
			Quantity: nd("2"), UnitPrice: nd("100"), DiscountRate: nd("10"), TaxRate: nd("18"),
		}},
		SelectedTerms: map[string][]string{"payment": {"payment_prepaid"}},
	}
}

func sampleCompany() *entity.CompanyProfile {
	return &entity.CompanyProfile{Name: "Örnek A.Ş.", TaxID: "1234567890", LogoURL: "https://cdn.example.com/logo.png"}
}

// ──────────────────────────────────────────────────────────────────────────────
// MapRecordToInputs
// ──────────────────────────────────────────────────────────────────────────────

func TestMapRecordToInputs_TotalesFormateados(t *testing.T) {
	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)

	assert.True(t, in.Totals.GrandTotal.Equal(decimal.RequireFromString("212.4")))
	assert.Contains(t, in.Field("totals.gross"), "200,00")
	assert.Contains(t, in.Field("totals.discount"), "20,00")
	assert.Contains(t, in.Field("totals.tax"), "32,40")
	assert.Contains(t, in.Field("totals.net"), "212,40")
	assert.NotContains(t, in.Fields, "totals.surcharge")
}

func TestMapRecordToInputs_TotalesSegunEsquema(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.Totals = doctemplate.Totals{ShowNet: true}

	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), s)
	require.NoError(t, err)

	assert.NotContains(t, in.Fields, "totals.gross")
	assert.NotContains(t, in.Fields, "totals.discount")
	assert.NotContains(t, in.Fields, "totals.tax")
	assert.Contains(t, in.Fields, "totals.net")
}

func TestMapRecordToInputs_CamposDeDocumentoYFechas(t *testing.T) {
	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, "TKL-2024-001", in.Field("document.number"))
	assert.Equal(t, "TEKLİF", in.Field("document.title"))
	assert.Equal(t, "01.05.2024", in.Field("document.date"))
	assert.Equal(t, "01.06.2024", in.Field("document.validUntil"))
	assert.Equal(t, "02.05.2024", in.Field("issuedOn"))
	assert.Equal(t, "https://cdn.example.com/logo.png", in.Field("header.logoUrl"))
	assert.Equal(t, "%100 peşin ödeme yapılacaktır.", in.Field("terms.payment"))
	assert.Equal(t, "Ödeme Şartları", in.Field("terms.payment.title"))
}

// Cambiar el idioma cambia todas las fechas a la vez.
func TestMapRecordToInputs_UnSoloFormatoDeFecha(t *testing.T) {
	rec := sampleRecord()
	rec.Locale = "en"
	in, err := newMapper().MapRecordToInputs(rec, sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, "05/01/2024", in.Field("document.date"))
	assert.Equal(t, "06/01/2024", in.Field("document.validUntil"))
	assert.Equal(t, "05/02/2024", in.Field("issuedOn"))
	assert.Contains(t, in.Field("totals.net"), "212.40")
}

func TestMapRecordToInputs_ClienteSoloCamposSolicitados(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.CustomerBlock.Fields = []doctemplate.CustomerField{doctemplate.CustomerCompany, doctemplate.CustomerTaxOffice}

	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), s)
	require.NoError(t, err)

	assert.Equal(t, "Yılmaz Ltd.", in.Field("customer.company"))
	v, ok := in.Fields["customer.taxOffice"]
	assert.True(t, ok, "el campo ausente existe como cadena vacía")
	assert.Equal(t, "", v)
	assert.NotContains(t, in.Fields, "customer.name")
	assert.NotContains(t, in.Fields, "customer.email")
}

func TestMapRecordToInputs_SinClienteNiEmpresa(t *testing.T) {
	rec := sampleRecord()
	rec.Customer = nil
	in, err := newMapper().MapRecordToInputs(rec, nil, doctemplate.DefaultSchema())
	require.NoError(t, err)

	assert.Equal(t, "", in.Field("customer.name"))
	assert.Equal(t, "", in.Field("company.name"))
	assert.Equal(t, "", in.Field("header.logoUrl"))
}

// ── Tabla ─────────────────────────────────────────────────────────────────────

func TestMapRecordToInputs_ColumnaOcultaNoAparece(t *testing.T) {
	s := doctemplate.DefaultSchema()
	for i := range s.LineTable.Columns {
		if s.LineTable.Columns[i].Key == doctemplate.ColumnDiscountRate {
			s.LineTable.Columns[i].Visible = false
		}
	}

	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), s)
	require.NoError(t, err)

	require.Len(t, in.Table, 2)
	assert.NotContains(t, in.Table[0], "İndirim")
	assert.NotContains(t, in.Table[1], "%10")
	for _, row := range in.Table {
		assert.Len(t, row, len(s.LineTable.VisibleColumns()))
	}
}

func TestMapRecordToInputs_CeldasFormateadas(t *testing.T) {
	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)

	header := in.Table[0]
	row := in.Table[1]
	assert.Equal(t, []string{"#", "Açıklama", "Miktar", "Birim", "Birim Fiyat", "İndirim", "KDV", "Toplam"}, header)
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "Danışmanlık", row[1])
	assert.Equal(t, "2", row[2])
	assert.Equal(t, "saat", row[3])
	assert.Contains(t, row[4], "100,00")
	assert.Equal(t, "%10", row[5])
	assert.Equal(t, "%18", row[6])
	assert.Contains(t, row[7], "212,40")
	assert.Equal(t, doctemplate.AlignRight, in.Align[7])
}

func TestMapRecordToInputs_SinLineasFilaIndicadora(t *testing.T) {
	rec := sampleRecord()
	rec.Lines = nil
	in, err := newMapper().MapRecordToInputs(rec, sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)

	require.Len(t, in.Table, 2)
	assert.True(t, in.NoItems)
	assert.Equal(t, "Kalem bulunmamaktadır", in.Table[1][0])
	assert.Contains(t, in.Field("totals.net"), "0,00", "el total ausente se muestra como 0")
}

func TestMapRecordToInputs_MontoAusenteEsCero(t *testing.T) {
	rec := sampleRecord()
	rec.Lines[0].UnitPrice = decimal.NullDecimal{}
	in, err := newMapper().MapRecordToInputs(rec, sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)
	assert.Contains(t, in.Table[1][4], "0,00")
}

func TestMapRecordToInputs_LineaInvalida(t *testing.T) {
	rec := sampleRecord()
	rec.Lines = append(rec.Lines, entity.LineItem{Description: "x", Quantity: nd("-1"), UnitPrice: nd("5")})

	_, err := newMapper().MapRecordToInputs(rec, sampleCompany(), doctemplate.DefaultSchema())
	var calcErr *calc.CalculationError
	require.True(t, errors.As(err, &calcErr))
	assert.Equal(t, calc.FieldQuantity, calcErr.Field)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestMapRecordToInputs_CamposPersonalizados(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.Notes.CustomFields = []doctemplate.CustomTextField{
		{ID: "iban", Label: "IBAN", Text: "TR00 0000", Position: doctemplate.PositionFooter},
	}
	s.Notes.Intro = "Teklifimizi bilgilerinize sunarız."

	in, err := newMapper().MapRecordToInputs(sampleRecord(), sampleCompany(), s)
	require.NoError(t, err)
	assert.Equal(t, "TR00 0000", in.Field("custom.iban"))
	assert.Equal(t, "IBAN", in.Field("custom.iban.label"))
	assert.Equal(t, "Teklifimizi bilgilerinize sunarız.", in.Field("notes.intro"))
}

// Misma entrada y mismo reloj => misma salida.
func TestMapRecordToInputs_Determinista(t *testing.T) {
	m := newMapper()
	a, err := m.MapRecordToInputs(sampleRecord(), sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)
	b, err := m.MapRecordToInputs(sampleRecord(), sampleCompany(), doctemplate.DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateDocumentData
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateDocumentData_ReportaAmbosProblemas(t *testing.T) {
	rec := &entity.BusinessRecord{Customer: &entity.Customer{Email: "x@example.com"}}

	err := mapping.ValidateDocumentData(rec)
	var vErr *mapping.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Problems, 2)
	assert.Equal(t, "document.number", vErr.Problems[0].Field)
	assert.Equal(t, "customer.name", vErr.Problems[1].Field)
}

func TestValidateDocumentData_EmpresaBasta(t *testing.T) {
	rec := &entity.BusinessRecord{ID: "r1", Customer: &entity.Customer{Company: "ACME"}}
	assert.NoError(t, mapping.ValidateDocumentData(rec))
}

func TestValidateDocumentData_Nil(t *testing.T) {
	var vErr *mapping.ValidationError
	require.True(t, errors.As(mapping.ValidateDocumentData(nil), &vErr))
	assert.Len(t, vErr.Problems, 1)
}

func TestMapForTemplate_IdiomaDeLaPlantilla(t *testing.T) {
	rec := sampleRecord()
	rec.Locale = ""
	tmpl := doctemplate.Template{ID: "c1", Locale: "en", Schema: doctemplate.DefaultSchema()}

	in, err := newMapper().MapForTemplate(rec, sampleCompany(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, "en", in.Locale)
	assert.Equal(t, "05/01/2024", in.Field("document.date"))

	rec.Locale = "tr"
	in, err = newMapper().MapForTemplate(rec, sampleCompany(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, "tr", in.Locale, "el idioma del registro manda")

	rec.Locale = ""
	tmpl.Locale = ""
	in, err = newMapper().MapForTemplate(rec, sampleCompany(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, "tr", in.Locale)
}
