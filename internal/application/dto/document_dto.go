package dto

import "time"

// MoneyDTO importe en tres formas: decimal exacto, unidades menores y texto
// formateado según idioma y moneda.
type MoneyDTO struct {
	Amount    string `json:"amount"`
	Minor     int64  `json:"minor"`
	Formatted string `json:"formatted"`
}

// DocumentTotalsDTO totales del documento. Scale es el número de decimales de
// la moneda usado para Minor.
type DocumentTotalsDTO struct {
	Currency        string   `json:"currency"`
	Scale           int32    `json:"scale"`
	Subtotal        MoneyDTO `json:"subtotal"`
	Discount        MoneyDTO `json:"discount"`
	Tax             MoneyDTO `json:"tax"`
	Total           MoneyDTO `json:"total"`
	RecordDiscount  MoneyDTO `json:"record_discount"`
	RecordSurcharge MoneyDTO `json:"record_surcharge"`
	GrandTotal      MoneyDTO `json:"grand_total"`
}

// DocumentPreview resumen JSON de un documento, calculado con el mismo
// mapeador que el PDF.
type DocumentPreview struct {
	RecordID   string            `json:"record_id"`
	TemplateID string            `json:"template_id"`
	Filename   string            `json:"filename"`
	Locale     string            `json:"locale"`
	IssuedAt   time.Time         `json:"issued_at"`
	Fields     map[string]string `json:"fields"`
	Table      [][]string        `json:"table"`
	Totals     DocumentTotalsDTO `json:"totals"`
	Problems   []ProblemDTO      `json:"problems,omitempty"`
}

// RenderResponse respuesta de los modos preview y upload.
type RenderResponse struct {
	Mode     string `json:"mode"`
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	FellBack bool   `json:"fell_back,omitempty"`
}
