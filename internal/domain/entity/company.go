package entity

import "time"

// CompanyProfile datos de la empresa emisora que aparecen en los documentos.
type CompanyProfile struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Website   string
	TaxID     string
	TaxOffice string
	LogoURL   string
	IBAN      string
	UpdatedAt time.Time
}
