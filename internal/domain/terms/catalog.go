// Package terms contiene el catálogo estático de cláusulas comerciales y su
// formateo en bloques de texto por categoría.
package terms

// CatalogVersion versión del catálogo. Los documentos guardan el texto resuelto,
// así que cambiar el catálogo no altera documentos ya generados.
const CatalogVersion = "2024.1"

// Category categoría de cláusulas.
type Category string

const (
	CategoryPayment  Category = "payment"
	CategoryPricing  Category = "pricing"
	CategoryWarranty Category = "warranty"
	CategoryDelivery Category = "delivery"
)

// Clause cláusula del catálogo.
type Clause struct {
	ID    string
	Label string
	Text  string
}

var categoryOrder = []Category{CategoryPayment, CategoryPricing, CategoryWarranty, CategoryDelivery}

var categoryTitles = map[Category]string{
	CategoryPayment:  "Ödeme Şartları",
	CategoryPricing:  "Fiyatlandırma",
	CategoryWarranty: "Garanti Şartları",
	CategoryDelivery: "Teslimat Şartları",
}

var catalog = map[Category][]Clause{
	CategoryPayment: {
		{ID: "payment_prepaid", Label: "Peşin", Text: "%100 peşin ödeme yapılacaktır."},
		{ID: "payment_50_50", Label: "%50 Avans", Text: "%50 sipariş onayında, kalan %50 teslimatta ödenecektir."},
		{ID: "payment_30_days", Label: "30 Gün Vade", Text: "Fatura tarihinden itibaren 30 gün içinde ödenecektir."},
		{ID: "payment_60_days", Label: "60 Gün Vade", Text: "Fatura tarihinden itibaren 60 gün içinde ödenecektir."},
		{ID: "payment_on_delivery", Label: "Teslimatta Ödeme", Text: "Ödeme teslimat sırasında yapılacaktır."},
	},
	CategoryPricing: {
		{ID: "pricing_vat_excluded", Label: "KDV Hariç", Text: "Fiyatlara KDV dahil değildir."},
		{ID: "pricing_vat_included", Label: "KDV Dahil", Text: "Fiyatlara KDV dahildir."},
		{ID: "pricing_fx_fixed", Label: "Sabit Kur", Text: "Fiyatlar teklif tarihindeki döviz kuru üzerinden sabitlenmiştir."},
		{ID: "pricing_valid_30_days", Label: "30 Gün Geçerli", Text: "Fiyatlar teklif tarihinden itibaren 30 gün geçerlidir."},
	},
	CategoryWarranty: {
		{ID: "warranty_1_year", Label: "1 Yıl", Text: "Ürünler 1 yıl üretici garantisi kapsamındadır."},
		{ID: "warranty_2_years", Label: "2 Yıl", Text: "Ürünler 2 yıl üretici garantisi kapsamındadır."},
		{ID: "warranty_none", Label: "Garanti Yok", Text: "Bu teklif kapsamındaki ürünler için garanti verilmemektedir."},
	},
	CategoryDelivery: {
		{ID: "delivery_immediate", Label: "Hemen", Text: "Sipariş onayının ardından derhal teslim edilecektir."},
		{ID: "delivery_7_days", Label: "7 İş Günü", Text: "Teslimat sipariş onayından itibaren 7 iş günü içinde yapılacaktır."},
		{ID: "delivery_30_days", Label: "30 Gün", Text: "Teslimat sipariş onayından itibaren 30 gün içinde yapılacaktır."},
		{ID: "delivery_customer_site", Label: "Müşteri Adresine", Text: "Teslimat müşteri adresine yapılacaktır."},
	},
}

// Categories devuelve las categorías en su orden canónico.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Title título visible de la categoría ("" si no existe).
func Title(c Category) string { return categoryTitles[c] }

// Catalog devuelve una copia de las cláusulas de la categoría en orden de catálogo.
func Catalog(c Category) []Clause {
	src := catalog[c]
	out := make([]Clause, len(src))
	copy(out, src)
	return out
}

// Lookup busca una cláusula por id dentro de su categoría.
func Lookup(c Category, id string) (Clause, bool) {
	for _, cl := range catalog[c] {
		if cl.ID == id {
			return cl, true
		}
	}
	return Clause{}, false
}
