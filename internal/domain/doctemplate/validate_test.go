package doctemplate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

func TestValidateSchema_DefaultEsValido(t *testing.T) {
	res := doctemplate.ValidateSchema(doctemplate.DefaultSchema())
	assert.True(t, res.Valid(), "problemas: %v", res.Problems)
}

func TestValidateSchema_ReportaTodosLosProblemas(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.Page.Size = "A3"
	s.Page.Padding.Left = -1
	s.LineTable.Columns = append(s.LineTable.Columns, doctemplate.Column{Key: "quantity", Label: "Adet", Visible: true})
	s.Notes.CustomFields = []doctemplate.CustomTextField{{ID: "iban", Text: "TR00", Position: "sidebar"}}

	res := doctemplate.ValidateSchema(s)
	require.False(t, res.Valid())

	byField := make(map[string]doctemplate.Problem)
	for _, p := range res.Problems {
		byField[p.Section+"."+p.Field] = p
	}
	require.Len(t, res.Problems, 4, "problemas: %v", res.Problems)

	assert.Equal(t, "A3", byField["page.size"].Value)
	assert.Equal(t, "gte=0", byField["page.padding.left"].Rule)
	assert.Equal(t, "quantity", byField["lineTable.columns"].Value)
	assert.Equal(t, "unique=Key", byField["lineTable.columns"].Rule)
	assert.Equal(t, "sidebar", byField["notes.customTextFields[0].position"].Value)

	assert.Equal(t, []string{"page", "lineTable", "notes"}, res.Sections())
}

func TestValidateSchema_PosicionesPermitidas(t *testing.T) {
	for _, pos := range []doctemplate.FieldPosition{
		doctemplate.PositionHeader, doctemplate.PositionFooter,
		doctemplate.PositionBeforeTable, doctemplate.PositionAfterTable,
	} {
		s := doctemplate.DefaultSchema()
		s.Notes.CustomFields = []doctemplate.CustomTextField{{ID: "x", Text: "y", Position: pos}}
		assert.True(t, doctemplate.ValidateSchema(s).Valid(), "posición %s", pos)
	}
}

func TestValidateSchema_CampoDeClienteDesconocido(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.CustomerBlock.Fields = []doctemplate.CustomerField{doctemplate.CustomerName, "birthday"}

	res := doctemplate.ValidateSchema(s)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, doctemplate.SectionCustomerBlock, res.Problems[0].Section)
	assert.Equal(t, "birthday", res.Problems[0].Value)
}

// ── Sanitize ──────────────────────────────────────────────────────────────────

func TestSanitize_SoloReemplazaSeccionRota(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.Header.Title = "PROFORMA"
	s.Page.Padding.Top = -5
	s.Page.BaseFontSize = 11

	out, defects := doctemplate.Sanitize(s)
	require.Len(t, defects, 1)
	assert.Equal(t, doctemplate.SectionPage, defects[0].Section)
	assert.Contains(t, defects[0].Error(), "padding.top")

	assert.Equal(t, doctemplate.DefaultSchema().Page, out.Page, "la página vuelve al valor por defecto")
	assert.Equal(t, "PROFORMA", out.Header.Title, "las secciones válidas se conservan")
}

func TestSanitize_EsquemaValidoSinCambios(t *testing.T) {
	s := doctemplate.DefaultSchema()
	s.Totals.ShowTax = false

	out, defects := doctemplate.Sanitize(s)
	assert.Empty(t, defects)
	assert.Equal(t, s, out)
}

// ── ParseSchema ───────────────────────────────────────────────────────────────

func TestParseSchema_ClavesAusentesConservanDefault(t *testing.T) {
	raw := []byte(`{
		"header": {"title": "FATURA", "showLogo": false},
		"lineTable": {"columns": [
			{"key": "description", "label": "Hizmet", "visible": true},
			{"key": "total", "label": "Tutar", "visible": true, "align": "right"}
		]},
		"unknownSection": {"x": 1}
	}`)
	s, err := doctemplate.ParseSchema(raw)
	require.NoError(t, err)

	assert.Equal(t, "FATURA", s.Header.Title)
	assert.False(t, s.Header.ShowLogo)
	assert.Equal(t, doctemplate.PageA4, s.Page.Size)
	assert.Equal(t, doctemplate.BlankCanvas, s.Page.BasePDF)
	require.Len(t, s.LineTable.Columns, 2)
	assert.Equal(t, "Hizmet", s.LineTable.Columns[0].Label)
	assert.Equal(t, doctemplate.AlignRight, s.LineTable.Columns[1].Align)
	assert.Equal(t, doctemplate.DefaultSchema().CustomerBlock.Fields, s.CustomerBlock.Fields)
}

func TestParseSchema_ColumnasNoHeredanDelDefault(t *testing.T) {
	s, err := doctemplate.ParseSchema([]byte(`{"lineTable": {"columns": [
		{"key": "description", "label": "Desc"},
		{"key": "total", "label": "T", "visible": true}
	]}}`))
	require.NoError(t, err)
	require.Len(t, s.LineTable.Columns, 2)

	assert.Equal(t, doctemplate.Column{Key: "description", Label: "Desc"}, s.LineTable.Columns[0])
	assert.Equal(t, doctemplate.Column{Key: "total", Label: "T", Visible: true}, s.LineTable.Columns[1])
	assert.Len(t, s.LineTable.VisibleColumns(), 1)
}

func TestParseSchema_ListasVaciasExplicitas(t *testing.T) {
	s, err := doctemplate.ParseSchema([]byte(`{"customerBlock": {"fields": []}, "notes": {"customTextFields": []}}`))
	require.NoError(t, err)
	assert.Empty(t, s.CustomerBlock.Fields)
	assert.NotNil(t, s.CustomerBlock.Fields)
	assert.Empty(t, s.Notes.CustomFields)
	assert.Equal(t, doctemplate.DefaultSchema().LineTable.Columns, s.LineTable.Columns)
}

func TestParseSchema_Vacio(t *testing.T) {
	s, err := doctemplate.ParseSchema(nil)
	require.NoError(t, err)
	assert.Equal(t, doctemplate.DefaultSchema(), s)

	_, err = doctemplate.ParseSchema([]byte(`{"page": 3}`))
	assert.Error(t, err)
}

// ── Template ──────────────────────────────────────────────────────────────────

func TestTemplate_CloneNoComparteSlices(t *testing.T) {
	orig := doctemplate.Template{ID: "t1", Schema: doctemplate.DefaultSchema()}
	cp := orig.Clone()
	cp.Schema.LineTable.Columns[0].Label = "cambiado"
	cp.Schema.CustomerBlock.Fields[0] = doctemplate.CustomerEmail

	assert.Equal(t, "#", orig.Schema.LineTable.Columns[0].Label)
	assert.Equal(t, doctemplate.CustomerName, orig.Schema.CustomerBlock.Fields[0])
}

func TestTemplate_LayoutKey(t *testing.T) {
	assert.Equal(t, "compact", doctemplate.Template{Kind: doctemplate.KindFixed, Layout: "compact"}.LayoutKey())
	assert.Equal(t, doctemplate.LayoutGeneric, doctemplate.Template{Kind: doctemplate.KindCustom, Layout: "compact"}.LayoutKey())
	assert.Equal(t, doctemplate.LayoutGeneric, doctemplate.Template{Kind: doctemplate.KindFixed}.LayoutKey())
}

func TestVisibleColumns(t *testing.T) {
	lt := doctemplate.LineTable{Columns: []doctemplate.Column{
		{Key: "a", Visible: true}, {Key: "b", Visible: false}, {Key: "c", Visible: true},
	}}
	keys := []string{}
	for _, c := range lt.VisibleColumns() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"a", "c"}, keys)
}
