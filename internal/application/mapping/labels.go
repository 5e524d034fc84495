package mapping

import "github.com/jhoicas/docengine/pkg/locale"

// Etiquetas fijas del documento por idioma base. Las etiquetas de columnas y
// títulos vienen del esquema; estas cubren los textos que el esquema no define.
var labelSets = map[string]map[string]string{
	"tr": {
		"label.document.number":        "Belge No",
		"label.document.date":          "Tarih",
		"label.document.validUntil":    "Geçerlilik Tarihi",
		"label.customer":               "Sayın",
		"label.customer.name":          "Ad Soyad",
		"label.customer.company":       "Firma",
		"label.customer.contactPerson": "Yetkili",
		"label.customer.email":         "E-posta",
		"label.customer.phone":         "Telefon",
		"label.customer.address":       "Adres",
		"label.customer.taxId":         "Vergi No",
		"label.customer.taxOffice":     "Vergi Dairesi",
		"label.totals.gross":           "Ara Toplam",
		"label.totals.discount":        "İndirim",
		"label.totals.recordDiscount":  "Ek İndirim",
		"label.totals.tax":             "KDV",
		"label.totals.surcharge":       "Ek Ücret",
		"label.totals.net":             "Genel Toplam",
		"label.table.empty":            "Kalem bulunmamaktadır",
		"label.issuedOn":               "Düzenlenme",
		"label.notes":                  "Notlar",
	},
	"en": {
		"label.document.number":        "Document No",
		"label.document.date":          "Date",
		"label.document.validUntil":    "Valid Until",
		"label.customer":               "Bill To",
		"label.customer.name":          "Name",
		"label.customer.company":       "Company",
		"label.customer.contactPerson": "Contact",
		"label.customer.email":         "Email",
		"label.customer.phone":         "Phone",
		"label.customer.address":       "Address",
		"label.customer.taxId":         "Tax ID",
		"label.customer.taxOffice":     "Tax Office",
		"label.totals.gross":           "Subtotal",
		"label.totals.discount":        "Discount",
		"label.totals.recordDiscount":  "Additional Discount",
		"label.totals.tax":             "Tax",
		"label.totals.surcharge":       "Surcharge",
		"label.totals.net":             "Grand Total",
		"label.table.empty":            "No items",
		"label.issuedOn":               "Issued on",
		"label.notes":                  "Notes",
	},
}

func labelsFor(loc string) map[string]string {
	b, _ := locale.Tag(loc).Base()
	if set, ok := labelSets[b.String()]; ok {
		return set
	}
	return labelSets[locale.Default]
}
