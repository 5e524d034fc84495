package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/docengine/internal/domain/entity"
)

// fixture registro y empresa leídos de un archivo YAML o JSON. Los importes
// van como texto para no perder precisión.
type fixture struct {
	Company *companyFixture `yaml:"company"`
	Record  recordFixture   `yaml:"record"`
}

type companyFixture struct {
	Name      string `yaml:"name"`
	Address   string `yaml:"address"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	Website   string `yaml:"website"`
	TaxID     string `yaml:"taxId"`
	TaxOffice string `yaml:"taxOffice"`
	LogoURL   string `yaml:"logoUrl"`
	IBAN      string `yaml:"iban"`
}

type customerFixture struct {
	Name          string `yaml:"name"`
	Company       string `yaml:"company"`
	ContactPerson string `yaml:"contactPerson"`
	Email         string `yaml:"email"`
	Phone         string `yaml:"phone"`
	Address       string `yaml:"address"`
	TaxID         string `yaml:"taxId"`
	TaxOffice     string `yaml:"taxOffice"`
}

type lineFixture struct {
	Code         string  `yaml:"code"`
	Description  string  `yaml:"description"`
	Unit         string  `yaml:"unit"`
	Quantity     *string `yaml:"quantity"`
	UnitPrice    *string `yaml:"unitPrice"`
	DiscountRate *string `yaml:"discountRate"`
	TaxRate      *string `yaml:"taxRate"`
}

type adjustmentFixture struct {
	Kind   string  `yaml:"kind"`
	Label  string  `yaml:"label"`
	Amount *string `yaml:"amount"`
	Rate   *string `yaml:"rate"`
}

type recordFixture struct {
	ID            string              `yaml:"id"`
	Number        string              `yaml:"number"`
	Type          string              `yaml:"type"`
	Title         string              `yaml:"title"`
	Currency      string              `yaml:"currency"`
	Locale        string              `yaml:"locale"`
	IssueDate     string              `yaml:"issueDate"`
	ValidUntil    string              `yaml:"validUntil"`
	Customer      *customerFixture    `yaml:"customer"`
	Lines         []lineFixture       `yaml:"lines"`
	Adjustments   []adjustmentFixture `yaml:"adjustments"`
	SelectedTerms map[string][]string `yaml:"selectedTerms"`
	CustomTerms   map[string]string   `yaml:"customTerms"`
	Notes         string              `yaml:"notes"`
}

const dateLayout = "2006-01-02"

func loadFixture(path string) (*entity.BusinessRecord, *entity.CompanyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("leer fixture: %w", err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*entity.BusinessRecord, *entity.CompanyProfile, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("decodificar fixture: %w", err)
	}
	rec, err := f.Record.toEntity()
	if err != nil {
		return nil, nil, err
	}
	var company *entity.CompanyProfile
	if f.Company != nil {
		c := f.Company
		company = &entity.CompanyProfile{
			Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email,
			Website: c.Website, TaxID: c.TaxID, TaxOffice: c.TaxOffice,
			LogoURL: c.LogoURL, IBAN: c.IBAN,
		}
	}
	return rec, company, nil
}

func (r recordFixture) toEntity() (*entity.BusinessRecord, error) {
	rec := &entity.BusinessRecord{
		ID:            r.ID,
		Number:        r.Number,
		Type:          entity.DocumentType(strings.ToLower(r.Type)),
		Title:         r.Title,
		Currency:      r.Currency,
		Locale:        r.Locale,
		SelectedTerms: r.SelectedTerms,
		CustomTerms:   r.CustomTerms,
		Notes:         r.Notes,
	}
	if rec.ID == "" {
		rec.ID = "fixture"
	}
	if rec.Type == "" {
		rec.Type = entity.DocumentQuote
	}
	if !rec.Type.Valid() {
		return nil, fmt.Errorf("record.type: %q no soportado", r.Type)
	}

	if r.IssueDate != "" {
		d, err := time.Parse(dateLayout, r.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("record.issueDate: %w", err)
		}
		rec.IssueDate = d
	}
	if r.ValidUntil != "" {
		d, err := time.Parse(dateLayout, r.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("record.validUntil: %w", err)
		}
		rec.ValidUntil = &d
	}
	if r.Customer != nil {
		c := r.Customer
		rec.Customer = &entity.Customer{
			Name: c.Name, Company: c.Company, ContactPerson: c.ContactPerson,
			Email: c.Email, Phone: c.Phone, Address: c.Address,
			TaxID: c.TaxID, TaxOffice: c.TaxOffice,
		}
	}

	for i, l := range r.Lines {
		line := entity.LineItem{Position: i + 1, Code: l.Code, Description: l.Description, Unit: l.Unit}
		var err error
		fields := []struct {
			name string
			src  *string
			dst  *decimal.NullDecimal
		}{
			{"quantity", l.Quantity, &line.Quantity},
			{"unitPrice", l.UnitPrice, &line.UnitPrice},
			{"discountRate", l.DiscountRate, &line.DiscountRate},
			{"taxRate", l.TaxRate, &line.TaxRate},
		}
		for _, f := range fields {
			if *f.dst, err = nullDecimal(f.src); err != nil {
				return nil, fmt.Errorf("record.lines[%d].%s: %w", i, f.name, err)
			}
		}
		rec.Lines = append(rec.Lines, line)
	}

	for i, a := range r.Adjustments {
		adj := entity.Adjustment{Kind: entity.AdjustmentKind(strings.ToLower(a.Kind)), Label: a.Label}
		var err error
		if adj.Amount, err = nullDecimal(a.Amount); err != nil {
			return nil, fmt.Errorf("record.adjustments[%d].amount: %w", i, err)
		}
		if adj.Rate, err = nullDecimal(a.Rate); err != nil {
			return nil, fmt.Errorf("record.adjustments[%d].rate: %w", i, err)
		}
		rec.Adjustments = append(rec.Adjustments, adj)
	}
	return rec, nil
}

func nullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// fixtureStore expone el fixture con los puertos de repositorio.
type fixtureStore struct {
	rec     *entity.BusinessRecord
	company *entity.CompanyProfile
}

func (s fixtureStore) GetByID(_ context.Context, id string) (*entity.BusinessRecord, error) {
	if s.rec == nil || s.rec.ID != id {
		return nil, nil
	}
	return s.rec, nil
}

func (s fixtureStore) GetProfile(context.Context) (*entity.CompanyProfile, error) {
	return s.company, nil
}
