package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/dto"
	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/application/templates"
	"github.com/jhoicas/docengine/internal/infrastructure/viewer"
)

// DocumentService casos de uso de documentos que expone la API.
type DocumentService interface {
	Render(ctx context.Context, recordID string, sel templates.Selection, mode rendering.Mode, opts rendering.Options) (*rendering.Result, error)
	Preview(ctx context.Context, recordID string, sel templates.Selection) (*dto.DocumentPreview, error)
}

// ViewStore vistas previas publicadas.
type ViewStore interface {
	Get(id string) (viewer.Entry, bool)
}

// DocumentHandler genera y sirve documentos.
type DocumentHandler struct {
	docs  DocumentService
	views ViewStore
	log   zerolog.Logger
}

// NewDocumentHandler construye el handler. views puede ser nil.
func NewDocumentHandler(docs DocumentService, views ViewStore, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, views: views, log: log}
}

// PDF genera el documento de un registro.
// GET /api/documents/:id/pdf?template=<id>&mode=download|preview|upload
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	mode, err := rendering.ParseMode(c.Query("mode"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	sel := templates.Selection{TemplateID: c.Query("template")}

	res, err := h.docs.Render(c.Context(), c.Params("id"), sel, mode, rendering.Options{})
	if err != nil {
		return writeError(c, h.log, err)
	}

	switch {
	case res.Mode == rendering.ModeUpload:
		return c.Status(fiber.StatusCreated).JSON(dto.RenderResponse{Mode: string(res.Mode), Filename: res.Filename, URL: res.URL})
	case res.Mode == rendering.ModePreview && !res.FellBack:
		return c.JSON(dto.RenderResponse{Mode: string(res.Mode), Filename: res.Filename, URL: res.URL})
	}
	if res.FellBack {
		c.Set("X-Preview-Fallback", "true")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Send(res.Bytes)
}

// Summary resumen JSON con los mismos totales que el PDF.
// GET /api/documents/:id/summary?template=<id>
func (h *DocumentHandler) Summary(c *fiber.Ctx) error {
	p, err := h.docs.Preview(c.Context(), c.Params("id"), templates.Selection{TemplateID: c.Query("template")})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(p)
}

// View sirve una vista previa publicada. El identificador es la credencial.
// GET /api/documents/view/:handle
func (h *DocumentHandler) View(c *fiber.Ctx) error {
	if h.views == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vista no encontrada"})
	}
	e, ok := h.views.Get(c.Params("handle"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vista no encontrada o vencida"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", e.Name))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(e.Data)
}
