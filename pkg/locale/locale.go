// Package locale formatea montos, porcentajes, cantidades y fechas según el
// idioma del documento usando golang.org/x/text.
package locale

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default idioma usado cuando el registro no define uno.
const Default = "tr"

var dateLayouts = map[string]string{
	"tr": "02.01.2006",
	"de": "02.01.2006",
	"en": "01/02/2006",
	"es": "02/01/2006",
	"fr": "02/01/2006",
}

// Tag interpreta un código de idioma; vacío o inválido cae en Default.
func Tag(loc string) language.Tag {
	if strings.TrimSpace(loc) == "" {
		return language.Make(Default)
	}
	t, err := language.Parse(loc)
	if err != nil {
		return language.Make(Default)
	}
	return t
}

func base(loc string) string {
	b, _ := Tag(loc).Base()
	return b.String()
}

// CurrencyScale decimales estándar de la moneda (2 si el código es inválido).
func CurrencyScale(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FormatMoney monto redondeado a la escala de la moneda, con separadores del
// idioma y símbolo. Ej.: tr/TRY 212.4 -> "212,40 ₺"; en/USD -> "$212.40".
func FormatMoney(amount decimal.Decimal, code, loc string) string {
	scale := CurrencyScale(code)
	num := formatDecimal(amount.StringFixed(scale), loc)

	unit, err := currency.ParseISO(code)
	if err != nil {
		if code == "" {
			return num
		}
		return num + " " + strings.ToUpper(code)
	}
	sym := message.NewPrinter(Tag(loc)).Sprint(currency.NarrowSymbol(unit))
	if base(loc) == "en" {
		return sym + num
	}
	return num + " " + sym
}

// FormatPercent tasa (0-100) con hasta 2 decimales. En turco el signo va
// delante: "%18"; en el resto detrás: "18%".
func FormatPercent(rate decimal.Decimal, loc string) string {
	num := formatDecimal(rate.Round(2).String(), loc)
	if base(loc) == "tr" {
		return "%" + num
	}
	return num + "%"
}

// FormatQuantity cantidad con hasta 3 decimales.
func FormatQuantity(q decimal.Decimal, loc string) string {
	return formatDecimal(q.Round(3).String(), loc)
}

// ── Separadores ──────────────────────────────────────────────────────────────

type separators struct {
	group   string
	decimal string
}

var sepCache sync.Map // idioma -> separators

// separatorsFor separadores de miles y decimales del idioma, leídos de la
// salida de x/text para un número de muestra.
func separatorsFor(loc string) separators {
	tag := Tag(loc)
	if v, ok := sepCache.Load(tag.String()); ok {
		return v.(separators)
	}
	sample := message.NewPrinter(tag).Sprint(number.Decimal(12345678.5, number.Scale(1)))
	sep := separators{group: ",", decimal: "."}
	i, j := strings.Index(sample, "2"), strings.Index(sample, "3")
	k, m := strings.LastIndex(sample, "8"), strings.LastIndex(sample, "5")
	if i >= 0 && j > i && k >= 0 && m > k {
		sep = separators{group: sample[i+1 : j], decimal: sample[k+1 : m]}
	}
	sepCache.Store(tag.String(), sep)
	return sep
}

// formatDecimal agrupa de a tres la parte entera de un decimal ya redondeado
// ("-1234567.50") y aplica los separadores del idioma.
func formatDecimal(plain, loc string) string {
	sep := separatorsFor(loc)
	neg := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")
	intPart, frac, _ := strings.Cut(plain, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep.group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(sep.decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatDate única función de fechas para todos los campos de un documento.
// La fecha cero produce "".
func FormatDate(t time.Time, loc string) string {
	if t.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[base(loc)]
	if !ok {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}
