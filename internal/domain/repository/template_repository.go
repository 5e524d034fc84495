package repository

import (
	"context"

	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// TemplateSource puerto de lectura de plantillas personalizadas (design_settings).
// La implementación vive en infrastructure.
type TemplateSource interface {
	ListCustomTemplates(ctx context.Context) ([]doctemplate.Template, error)
}
