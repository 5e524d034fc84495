package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/pkg/locale"
)

// ── Resolución con valor por defecto ──────────────────────────────────────────
// Únicos lugares donde se sustituyen valores ausentes.

// resolveCustomerField atributo del cliente o "" si falta el cliente o el campo.
func resolveCustomerField(c *entity.Customer, field doctemplate.CustomerField) string {
	if c == nil {
		return ""
	}
	switch field {
	case doctemplate.CustomerName:
		return c.Name
	case doctemplate.CustomerCompany:
		return c.Company
	case doctemplate.CustomerContactPerson:
		return c.ContactPerson
	case doctemplate.CustomerEmail:
		return c.Email
	case doctemplate.CustomerPhone:
		return c.Phone
	case doctemplate.CustomerAddress:
		return c.Address
	case doctemplate.CustomerTaxID:
		return c.TaxID
	case doctemplate.CustomerTaxOffice:
		return c.TaxOffice
	default:
		return ""
	}
}

// resolveCompanyField atributo de la empresa emisora o "".
func resolveCompanyField(c *entity.CompanyProfile, key string) string {
	if c == nil {
		return ""
	}
	switch key {
	case "name":
		return c.Name
	case "address":
		return c.Address
	case "phone":
		return c.Phone
	case "email":
		return c.Email
	case "website":
		return c.Website
	case "taxId":
		return c.TaxID
	case "taxOffice":
		return c.TaxOffice
	case "logoUrl":
		return c.LogoURL
	case "iban":
		return c.IBAN
	default:
		return ""
	}
}

// resolveAmount valor numérico o cero si está ausente (NULL).
func resolveAmount(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func formatMoney(d decimal.Decimal, in DocumentInput) string {
	return locale.FormatMoney(d, in.Currency, in.Locale)
}
