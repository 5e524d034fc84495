package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo lectura del perfil de empresa sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador del perfil de empresa.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// GetProfile devuelve el perfil más reciente; (nil, nil) si no hay ninguno
// o la tabla aún no existe.
func (r *CompanyRepo) GetProfile(ctx context.Context) (*entity.CompanyProfile, error) {
	query := `
		SELECT id, name, address, phone, email, website, tax_id, tax_office,
		       logo_url, iban, updated_at
		FROM company_profile
		ORDER BY updated_at DESC
		LIMIT 1`
	var c entity.CompanyProfile
	err := r.db.QueryRow(ctx, query).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Website,
		&c.TaxID, &c.TaxOffice, &c.LogoURL, &c.IBAN, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	return &c, nil
}
