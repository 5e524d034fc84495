package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/application/dto"
	"github.com/jhoicas/docengine/internal/domain/entity"
)

func fixturePath(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("testdata", "quote.yaml"))
	require.NoError(t, err)
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFixture(t *testing.T) {
	rec, company, err := loadFixture(fixturePath(t))
	require.NoError(t, err)

	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, entity.DocumentQuote, rec.Type)
	require.NotNil(t, rec.ValidUntil)
	require.Len(t, rec.Lines, 1)
	assert.Equal(t, "18", rec.Lines[0].TaxRate.Decimal.String())
	assert.True(t, rec.Lines[0].Quantity.Valid)
	assert.Equal(t, "Örnek Yazılım A.Ş.", company.Name)
}

func TestParseFixture_ImporteInvalido(t *testing.T) {
	_, _, err := parseFixture([]byte("record:\n  lines:\n    - quantity: dos\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record.lines[0].quantity")
}

func TestParseFixture_ImporteAusenteQuedaNulo(t *testing.T) {
	rec, _, err := parseFixture([]byte("record:\n  number: X\n  lines:\n    - description: a\n"))
	require.NoError(t, err)
	assert.False(t, rec.Lines[0].UnitPrice.Valid)
	assert.Equal(t, "fixture", rec.ID)
}

func TestParseFixture_JSON(t *testing.T) {
	rec, company, err := parseFixture([]byte(`{"record":{"number":"F-1","type":"invoice","lines":[{"quantity":"1","unitPrice":"9.99"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentInvoice, rec.Type)
	assert.Nil(t, company)
}

func TestParseFixture_TipoInvalido(t *testing.T) {
	_, _, err := parseFixture([]byte("record:\n  type: receipt\n"))
	assert.Error(t, err)
}

func TestSummaryCmd(t *testing.T) {
	fx := fixturePath(t)
	t.Chdir(t.TempDir())

	out, err := run(t, "summary", "--fixture", fx)
	require.NoError(t, err)

	var p dto.DocumentPreview
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, int64(21240), p.Totals.GrandTotal.Minor)
	assert.Equal(t, "fixed:classic", p.TemplateID)
}

func TestPDFCmd(t *testing.T) {
	fx := fixturePath(t)
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := run(t, "pdf", "--fixture", fx, "--template", "fixed:compact", "--out", "teklif.pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "teklif.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFCmd_SinOrigen(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "pdf")
	assert.Error(t, err)
}

func TestTemplatesCmd(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "fixed:classic*")
	assert.Contains(t, out, "fixed:invoice")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"page":{"size":"B9"}}`), 0o600))
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{}`), 0o600))

	out, err := run(t, "validate", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "page.")

	out, err = run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "válido")
}

func TestTokenCmd(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	out, err := run(t, "token", "--role", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
