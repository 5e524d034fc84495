package dto

import (
	"time"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// TemplateResponse plantilla del catálogo. Schema solo se incluye en el detalle.
type TemplateResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Type        string              `json:"type"`
	Locale      string              `json:"locale,omitempty"`
	Kind        string              `json:"kind"`
	Layout      string              `json:"layout"`
	Version     int                 `json:"version"`
	IsDefault   bool                `json:"is_default"`
	CreatedAt   *time.Time          `json:"created_at,omitempty"`
	Schema      *doctemplate.Schema `json:"schema,omitempty"`
}

// TemplateListResponse catálogo completo (fijas primero).
type TemplateListResponse struct {
	Items     []TemplateResponse `json:"items"`
	DefaultID string             `json:"default_id"`
}

// SchemaProblemDTO problema de validación de un design_settings.
type SchemaProblemDTO struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Value   string `json:"value,omitempty"`
}

// ValidateSchemaResponse resultado de validar un design_settings.
type ValidateSchemaResponse struct {
	Valid    bool               `json:"valid"`
	Problems []SchemaProblemDTO `json:"problems"`
}

// NewTemplateResponse convierte una plantilla; withSchema incluye el esquema.
func NewTemplateResponse(t doctemplate.Template, withSchema bool) TemplateResponse {
	out := TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        string(t.Type),
		Locale:      t.Locale,
		Kind:        string(t.Kind),
		Layout:      t.LayoutKey(),
		Version:     t.Version,
		IsDefault:   t.IsDefault,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		out.CreatedAt = &created
	}
	if withSchema {
		s := t.Schema
		out.Schema = &s
	}
	return out
}

// NewValidateSchemaResponse convierte el resultado de la validación.
func NewValidateSchemaResponse(res doctemplate.ValidationResult) ValidateSchemaResponse {
	out := ValidateSchemaResponse{Valid: res.Valid(), Problems: make([]SchemaProblemDTO, 0, len(res.Problems))}
	for _, p := range res.Problems {
		out.Problems = append(out.Problems, SchemaProblemDTO{Section: p.Section, Field: p.Field, Rule: p.Rule, Value: p.Value})
	}
	return out
}
