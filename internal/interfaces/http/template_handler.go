package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/dto"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// TemplateCatalog operaciones del registro de plantillas que expone la API.
type TemplateCatalog interface {
	ListTemplates(ctx context.Context) []doctemplate.Template
	GetTemplate(ctx context.Context, id string) (doctemplate.Template, bool)
	GetDefaultTemplate(ctx context.Context) doctemplate.Template
	Refresh(ctx context.Context) error
}

// TemplateHandler maneja el catálogo de plantillas (protegido).
type TemplateHandler struct {
	catalog TemplateCatalog
	log     zerolog.Logger
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(catalog TemplateCatalog, log zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{catalog: catalog, log: log}
}

// List catálogo completo, fijas primero.
// GET /api/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	list := h.catalog.ListTemplates(c.Context())
	out := dto.TemplateListResponse{
		Items:     make([]dto.TemplateResponse, 0, len(list)),
		DefaultID: h.catalog.GetDefaultTemplate(c.Context()).ID,
	}
	for _, t := range list {
		out.Items = append(out.Items, dto.NewTemplateResponse(t, false))
	}
	return c.JSON(out)
}

// GetByID detalle con esquema.
// GET /api/templates/:id
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	t, ok := h.catalog.GetTemplate(c.Context(), c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TEMPLATE_NOT_FOUND", Message: "plantilla no encontrada"})
	}
	return c.JSON(dto.NewTemplateResponse(t, true))
}

// Refresh recarga las plantillas personalizadas. Un fallo conserva la caché.
// POST /api/templates/refresh
func (h *TemplateHandler) Refresh(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(c.Context()); err != nil {
		h.log.Error().Err(err).Msg("recarga de plantillas fallida")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REFRESH_FAILED", Message: "no se pudieron recargar las plantillas"})
	}
	return h.List(c)
}

// Validate valida un design_settings sin guardarlo.
// POST /api/templates/validate
func (h *TemplateHandler) Validate(c *fiber.Ctx) error {
	schema, err := doctemplate.ParseSchema(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "design_settings no es JSON válido"})
	}
	return c.JSON(dto.NewValidateSchemaResponse(doctemplate.ValidateSchema(schema)))
}
