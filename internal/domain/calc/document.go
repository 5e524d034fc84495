package calc

import "github.com/shopspring/decimal"

// AdjustmentKind tipo de ajuste a nivel de documento.
type AdjustmentKind string

const (
	AdjustmentDiscount  AdjustmentKind = "discount"
	AdjustmentSurcharge AdjustmentKind = "surcharge"
)

// Adjustment descuento o recargo sobre el total agregado del documento.
// Si Rate es válido prevalece sobre Amount.
type Adjustment struct {
	Kind   AdjustmentKind
	Amount decimal.NullDecimal
	Rate   decimal.NullDecimal
}

// DocumentTotals suma de todas las líneas más los ajustes del documento.
//
// Los ajustes se aplican después del impuesto sobre Total y el impuesto no se
// recalcula: GrandTotal = Total - RecordDiscount + RecordSurcharge (mínimo 0).
type DocumentTotals struct {
	Subtotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	RecordDiscount  decimal.Decimal
	RecordSurcharge decimal.Decimal
	GrandTotal      decimal.Decimal
}

// ComputeDocumentTotals suma campo a campo los totales de línea y aplica los
// ajustes del documento. Sin líneas ni ajustes devuelve todo en cero.
func ComputeDocumentTotals(lines []LineTotals, adjustments ...Adjustment) (DocumentTotals, error) {
	out := DocumentTotals{
		Subtotal:        decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TaxAmount:       decimal.Zero,
		Total:           decimal.Zero,
		RecordDiscount:  decimal.Zero,
		RecordSurcharge: decimal.Zero,
	}
	for _, l := range lines {
		out.Subtotal = out.Subtotal.Add(l.Subtotal)
		out.DiscountAmount = out.DiscountAmount.Add(l.DiscountAmount)
		out.TaxAmount = out.TaxAmount.Add(l.TaxAmount)
		out.Total = out.Total.Add(l.Total)
	}

	for _, adj := range adjustments {
		amount, err := adjustmentAmount(adj, out.Total)
		if err != nil {
			return DocumentTotals{}, err
		}
		switch adj.Kind {
		case AdjustmentDiscount:
			out.RecordDiscount = out.RecordDiscount.Add(amount)
		case AdjustmentSurcharge:
			out.RecordSurcharge = out.RecordSurcharge.Add(amount)
		default:
			return DocumentTotals{}, newCalcError(FieldAdjustment, string(adj.Kind), "tipo de ajuste desconocido")
		}
	}

	out.GrandTotal = out.Total.Sub(out.RecordDiscount).Add(out.RecordSurcharge)
	if out.GrandTotal.IsNegative() {
		out.GrandTotal = decimal.Zero
	}
	return out, nil
}

func adjustmentAmount(adj Adjustment, base decimal.Decimal) (decimal.Decimal, error) {
	if adj.Rate.Valid {
		r, err := rate(FieldAdjustment, adj.Rate)
		if err != nil {
			return decimal.Zero, err
		}
		return base.Mul(r).Div(hundred), nil
	}
	if !adj.Amount.Valid {
		return decimal.Zero, nil
	}
	if adj.Amount.Decimal.IsNegative() {
		return decimal.Zero, newCalcError(FieldAdjustment, adj.Amount.Decimal.String(), "no puede ser negativo")
	}
	return adj.Amount.Decimal, nil
}
