package entity

import "time"

// Customer cliente al que se dirige una cotización, propuesta o factura.
type Customer struct {
	ID            string
	Name          string
	Company       string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	TaxID         string
	TaxOffice     string // vergi dairesi
	CreatedAt     time.Time
}

// HasIdentity informa si el cliente tiene nombre o empresa para mostrar.
func (c *Customer) HasIdentity() bool {
	return c != nil && (c.Name != "" || c.Company != "")
}
