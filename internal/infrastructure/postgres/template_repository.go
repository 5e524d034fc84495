package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/internal/domain/repository"
)

var _ repository.TemplateSource = (*TemplateRepo)(nil)

// TemplateRepo lectura de plantillas personalizadas (document_templates).
type TemplateRepo struct {
	db  Querier
	log zerolog.Logger
}

// NewTemplateRepository construye el adaptador de plantillas.
func NewTemplateRepository(db Querier, log zerolog.Logger) *TemplateRepo {
	return &TemplateRepo{db: db, log: log}
}

// ListCustomTemplates devuelve las plantillas no borradas, más recientes
// primero. Un design_settings ilegible se reemplaza por el esquema por defecto.
func (r *TemplateRepo) ListCustomTemplates(ctx context.Context) ([]doctemplate.Template, error) {
	query := `
		SELECT id, name, description, type, locale, design_settings,
		       version, is_default, created_at
		FROM document_templates
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			r.log.Warn().Msg("tabla document_templates inexistente; sin plantillas personalizadas")
			return nil, nil
		}
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var list []doctemplate.Template
	for rows.Next() {
		var (
			t        doctemplate.Template
			docType  string
			settings []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &docType, &t.Locale,
			&settings, &t.Version, &t.IsDefault, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Type = entity.DocumentType(docType)
		t.Kind = doctemplate.KindCustom
		schema, err := doctemplate.ParseSchema(settings)
		if err != nil {
			r.log.Warn().Err(err).Str("template_id", t.ID).Msg("design_settings ilegible; se usa el esquema por defecto")
			schema = doctemplate.DefaultSchema()
		}
		t.Schema = schema
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return list, nil
}
