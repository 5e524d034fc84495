// Package calc calcula los totales monetarios de líneas y documentos.
//
// Toda la aritmética se hace con shopspring/decimal; el redondeo ocurre solo al
// formatear para presentación (ver pkg/locale) o al convertir a unidades menores.
package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Campos reportados en CalculationError.
const (
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unitPrice"
	FieldDiscountRate = "discountRate"
	FieldTaxRate      = "taxRate"
	FieldAdjustment   = "adjustment"
)

// LineInput datos numéricos de una línea. Las tasas ausentes (Valid=false) valen 0.
type LineInput struct {
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.NullDecimal
	TaxRate      decimal.NullDecimal
}

// LineTotals totales derivados de una línea; nunca se persisten.
type LineTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeLineTotals calcula subtotal, descuento, impuesto y total de una línea.
// El impuesto se aplica sobre el monto ya descontado.
func ComputeLineTotals(in LineInput) (LineTotals, error) {
	if in.Quantity.IsNegative() {
		return LineTotals{}, newCalcError(FieldQuantity, in.Quantity.String(), "no puede ser negativa")
	}
	if in.UnitPrice.IsNegative() {
		return LineTotals{}, newCalcError(FieldUnitPrice, in.UnitPrice.String(), "no puede ser negativo")
	}
	discountRate, err := rate(FieldDiscountRate, in.DiscountRate)
	if err != nil {
		return LineTotals{}, err
	}
	taxRate, err := rate(FieldTaxRate, in.TaxRate)
	if err != nil {
		return LineTotals{}, err
	}

	subtotal := in.Quantity.Mul(in.UnitPrice)
	discount := subtotal.Mul(discountRate).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Div(hundred)

	return LineTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          taxable.Add(tax),
	}, nil
}

// LineInputFromFloats construye un LineInput desde valores float64 (por ejemplo
// payloads JSON de la UI). NaN e Inf se rechazan en lugar de propagarse.
func LineInputFromFloats(quantity, unitPrice float64, discountRate, taxRate *float64) (LineInput, error) {
	q, err := fromFloat(FieldQuantity, quantity)
	if err != nil {
		return LineInput{}, err
	}
	p, err := fromFloat(FieldUnitPrice, unitPrice)
	if err != nil {
		return LineInput{}, err
	}
	in := LineInput{Quantity: q, UnitPrice: p}
	if discountRate != nil {
		d, err := fromFloat(FieldDiscountRate, *discountRate)
		if err != nil {
			return LineInput{}, err
		}
		in.DiscountRate = decimal.NewNullDecimal(d)
	}
	if taxRate != nil {
		t, err := fromFloat(FieldTaxRate, *taxRate)
		if err != nil {
			return LineInput{}, err
		}
		in.TaxRate = decimal.NewNullDecimal(t)
	}
	return in, nil
}

// MinorUnits convierte un monto a unidades menores (kuruş, centavos) con
// redondeo half-up a la escala de la moneda.
func MinorUnits(amount decimal.Decimal, scale int32) int64 {
	return amount.Round(scale).Shift(scale).IntPart()
}

func rate(field string, v decimal.NullDecimal) (decimal.Decimal, error) {
	if !v.Valid {
		return decimal.Zero, nil
	}
	if v.Decimal.IsNegative() || v.Decimal.GreaterThan(hundred) {
		return decimal.Zero, newCalcError(field, v.Decimal.String(), "debe estar entre 0 y 100")
	}
	return v.Decimal, nil
}

func fromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, newCalcError(field, formatFloat(f), "debe ser un número finito")
	}
	return decimal.NewFromFloat(f), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	default:
		return "-Inf"
	}
}
