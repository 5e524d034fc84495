package mapping

import (
	"strconv"

	"github.com/jhoicas/docengine/internal/domain/calc"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/pkg/locale"
)

// buildTable arma la matriz de la tabla: fila 0 con las etiquetas de las
// columnas visibles y una fila por línea. Sin líneas agrega una fila indicadora.
func (m *Mapper) buildTable(
	lines []entity.LineItem,
	totals []calc.LineTotals,
	table doctemplate.LineTable,
	in DocumentInput,
) ([][]string, []string, []doctemplate.Alignment, bool) {
	cols := table.VisibleColumns()
	header := make([]string, len(cols))
	keys := make([]string, len(cols))
	aligns := make([]doctemplate.Alignment, len(cols))
	for i, c := range cols {
		header[i] = c.Label
		keys[i] = c.Key
		aligns[i] = columnAlign(c)
	}

	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, header)

	if len(lines) == 0 {
		if len(cols) == 0 {
			return rows, keys, aligns, true
		}
		empty := make([]string, len(cols))
		empty[0] = in.Fields["label.table.empty"]
		return append(rows, empty), keys, aligns, true
	}

	for i, l := range lines {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = cell(c.Key, i, l, totals[i], in)
		}
		rows = append(rows, row)
	}
	return rows, keys, aligns, false
}

func cell(key string, idx int, l entity.LineItem, lt calc.LineTotals, in DocumentInput) string {
	switch key {
	case doctemplate.ColumnPosition:
		if l.Position > 0 {
			return strconv.Itoa(l.Position)
		}
		return strconv.Itoa(idx + 1)
	case doctemplate.ColumnCode:
		return l.Code
	case doctemplate.ColumnDescription:
		return l.Description
	case doctemplate.ColumnUnit:
		return l.Unit
	case doctemplate.ColumnQuantity:
		return locale.FormatQuantity(resolveAmount(l.Quantity), in.Locale)
	case doctemplate.ColumnUnitPrice:
		return formatMoney(resolveAmount(l.UnitPrice), in)
	case doctemplate.ColumnDiscountRate:
		return locale.FormatPercent(resolveAmount(l.DiscountRate), in.Locale)
	case doctemplate.ColumnTaxRate:
		return locale.FormatPercent(resolveAmount(l.TaxRate), in.Locale)
	case doctemplate.ColumnSubtotal:
		return formatMoney(lt.Subtotal, in)
	case doctemplate.ColumnDiscountAmount:
		return formatMoney(lt.DiscountAmount, in)
	case doctemplate.ColumnTaxAmount:
		return formatMoney(lt.TaxAmount, in)
	case doctemplate.ColumnTotal:
		return formatMoney(lt.Total, in)
	default:
		return ""
	}
}

// columnAlign alineación explícita o, si falta, derecha para columnas numéricas.
func columnAlign(c doctemplate.Column) doctemplate.Alignment {
	if c.Align != "" {
		return c.Align
	}
	switch c.Key {
	case doctemplate.ColumnQuantity, doctemplate.ColumnUnitPrice, doctemplate.ColumnDiscountRate,
		doctemplate.ColumnTaxRate, doctemplate.ColumnSubtotal, doctemplate.ColumnDiscountAmount,
		doctemplate.ColumnTaxAmount, doctemplate.ColumnTotal:
		return doctemplate.AlignRight
	default:
		return doctemplate.AlignLeft
	}
}
