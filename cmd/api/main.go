package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/docengine/internal/application/document"
	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/application/templates"
	infrapdf "github.com/jhoicas/docengine/internal/infrastructure/pdf"
	"github.com/jhoicas/docengine/internal/infrastructure/postgres"
	"github.com/jhoicas/docengine/internal/infrastructure/storage"
	"github.com/jhoicas/docengine/internal/infrastructure/viewer"
	httpRouter "github.com/jhoicas/docengine/internal/interfaces/http"
	"github.com/jhoicas/docengine/pkg/config"
	"github.com/jhoicas/docengine/pkg/logger"
	"github.com/jhoicas/docengine/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer, metrics.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
	})

	recordRepo := postgres.NewRecordRepository(postgres.NewTxRunner(pool))
	companyRepo := postgres.NewCompanyRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool, log.Component("postgres"))

	registry := templates.NewRegistry(templateRepo,
		templates.WithLogger(log.Component("templates")),
		templates.WithObserver(recorder),
		templates.WithTTL(cfg.Render.TemplateTTL),
	)
	if err := registry.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("catálogo inicial sin plantillas personalizadas")
	}

	encoder := infrapdf.NewMarotoEncoder(
		infrapdf.WithLogger(log.Component("pdf")),
		infrapdf.WithAssetLoader(infrapdf.NewHTTPAssetLoader(cfg.Render.AssetTimeout,
			infrapdf.WithAllowedHosts(cfg.Render.AssetHosts...),
			infrapdf.WithAssetDir(cfg.Render.AssetDir),
		)),
		infrapdf.WithFontDir(cfg.Render.FontDir),
	)

	views := viewer.NewMemoryViewer(cfg.HTTP.PublicURL,
		viewer.WithMaxEntries(cfg.Render.MaxHandles),
		viewer.WithMaxAge(cfg.Render.HandleTTL),
	)

	pipelineOpts := []rendering.Option{
		rendering.WithViewer(views),
		rendering.WithDefaults(rendering.Options{
			Timeout:   cfg.Render.Timeout,
			HandleTTL: cfg.Render.HandleTTL,
		}),
		rendering.WithLogger(log.Component("rendering")),
		rendering.WithRecorder(recorder),
	}
	if cfg.Storage.Enabled() {
		store, err := storage.NewS3Store(ctx, cfg.Storage, storage.WithLogger(log.Component("storage")))
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("no se pudo verificar el bucket")
		}
		pipelineOpts = append(pipelineOpts, rendering.WithStore(store))
	} else {
		log.Info().Msg("STORAGE_BUCKET vacío: modo upload deshabilitado")
	}
	pipeline := rendering.NewPipeline(encoder, pipelineOpts...)

	mapper := mapping.NewMapper(mapping.Config{
		DefaultLocale:   cfg.Render.DefaultLocale,
		DefaultCurrency: cfg.Render.DefaultCurrency,
	})
	documentUC := document.NewUseCase(recordRepo, companyRepo, registry, mapper, pipeline, log.Component("document"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Render.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Docengine API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Templates: registry,
		Documents: documentUC,
		Views:     views,
		Observer:  recorder,
		Gatherer:  prometheus.DefaultGatherer,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
