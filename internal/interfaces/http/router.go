package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Templates TemplateCatalog
	Documents DocumentService
	Views     ViewStore
	Observer  RequestObserver     // opcional
	Gatherer  prometheus.Gatherer // opcional; expone /metrics
	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Observer != nil {
		app.Use(MetricsMiddleware(deps.Observer))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	documentHandler := NewDocumentHandler(deps.Documents, deps.Views, deps.Log)
	templateHandler := NewTemplateHandler(deps.Templates, deps.Log)

	// Vistas previas (público: el identificador aleatorio es la credencial)
	api.Get("/documents/view/:handle", documentHandler.View)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleEditor, jwt.RoleViewer)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleEditor)

	// Templates
	tpl := protected.Group("/templates")
	tpl.Get("/", anyRole, templateHandler.List)
	tpl.Post("/validate", writers, templateHandler.Validate)
	tpl.Post("/refresh", RequireRole(jwt.RoleAdmin), templateHandler.Refresh)
	tpl.Get("/:id", anyRole, templateHandler.GetByID)

	// Documents
	docs := protected.Group("/documents")
	docs.Get("/:id/summary", anyRole, documentHandler.Summary)
	docs.Get("/:id/pdf", writers, documentHandler.PDF)
}
