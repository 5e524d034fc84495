// Command render genera documentos desde la línea de comandos: a partir de un
// fixture YAML/JSON o de un registro en PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/docengine/internal/application/document"
	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/application/templates"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/repository"
	infrapdf "github.com/jhoicas/docengine/internal/infrastructure/pdf"
	"github.com/jhoicas/docengine/internal/infrastructure/postgres"
	"github.com/jhoicas/docengine/pkg/config"
	"github.com/jhoicas/docengine/pkg/jwt"
	"github.com/jhoicas/docengine/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel string
	useDB    bool
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "render",
		Short:         "Genera cotizaciones, propuestas y facturas en PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Nivel de log (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.useDB, "db", false, "Leer registros y plantillas desde PostgreSQL (config por entorno)")

	cmd.AddCommand(pdfCmd(g), summaryCmd(g), templatesCmd(g), validateCmd(), tokenCmd())
	return cmd
}

// ── Entorno ───────────────────────────────────────────────────────────────────

// env dependencias armadas para un comando; close libera el pool si hay.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *templates.Registry
	records  repository.RecordRepository
	company  repository.CompanyRepository
	close    func()
}

func newEnv(ctx context.Context, g *globalFlags, fixturePath string) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: "development", Level: g.logLevel, Output: os.Stderr})
	e := &env{cfg: cfg, log: log, close: func() {}}

	var source repository.TemplateSource
	if g.useDB {
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			return nil, err
		}
		e.close = pool.Close
		source = postgres.NewTemplateRepository(pool, log.Component("postgres"))
		e.records = postgres.NewRecordRepository(postgres.NewTxRunner(pool))
		e.company = postgres.NewCompanyRepository(pool)
	}
	if fixturePath != "" {
		rec, company, err := loadFixture(fixturePath)
		if err != nil {
			e.close()
			return nil, err
		}
		store := fixtureStore{rec: rec, company: company}
		e.records, e.company = store, store
	}
	e.registry = templates.NewRegistry(source, templates.WithLogger(log.Component("templates")))
	return e, nil
}

func (e *env) useCase() *document.UseCase {
	encoder := infrapdf.NewMarotoEncoder(
		infrapdf.WithLogger(e.log.Component("pdf")),
		infrapdf.WithAssetLoader(infrapdf.NewHTTPAssetLoader(e.cfg.Render.AssetTimeout,
			infrapdf.WithAllowedHosts(e.cfg.Render.AssetHosts...),
			infrapdf.WithAssetDir(e.cfg.Render.AssetDir),
		)),
		infrapdf.WithFontDir(e.cfg.Render.FontDir),
	)
	pipeline := rendering.NewPipeline(encoder,
		rendering.WithDefaults(rendering.Options{Timeout: e.cfg.Render.Timeout, HandleTTL: e.cfg.Render.HandleTTL}),
		rendering.WithLogger(e.log.Component("rendering")),
	)
	mapper := mapping.NewMapper(mapping.Config{
		DefaultLocale:   e.cfg.Render.DefaultLocale,
		DefaultCurrency: e.cfg.Render.DefaultCurrency,
	})
	return document.NewUseCase(e.records, e.company, e.registry, mapper, pipeline, e.log.Component("document"))
}

// recordTarget id a renderizar: el del fixture o el indicado con --id.
func recordTarget(e *env, id string) (string, error) {
	if s, ok := e.records.(fixtureStore); ok {
		return s.rec.ID, nil
	}
	if e.records == nil {
		return "", errors.New("indique --fixture o --db con --id")
	}
	if id == "" {
		return "", errors.New("--id requerido con --db")
	}
	return id, nil
}

// ── pdf ───────────────────────────────────────────────────────────────────────

func pdfCmd(g *globalFlags) *cobra.Command {
	var fixturePath, id, templateID, out string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Genera el PDF de un registro",
		Example: `  render pdf --fixture testdata/quote.yaml --template fixed:compact --out teklif.pdf
  render pdf --db --id 6f1c... --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, g, fixturePath)
			if err != nil {
				return err
			}
			defer e.close()
			target, err := recordTarget(e, id)
			if err != nil {
				return err
			}

			res, err := e.useCase().Render(ctx, target, templates.Selection{TemplateID: templateID},
				rendering.ModeDownload, rendering.Options{})
			if err != nil {
				return describe(err)
			}
			if out == "" {
				out = res.Filename
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(res.Bytes)
				return err
			}
			if err := os.WriteFile(out, res.Bytes, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%d bytes)\n", out, len(res.Bytes))
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "Fixture YAML/JSON con record y company")
	cmd.Flags().StringVar(&id, "id", "", "Id del registro (con --db)")
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Id de plantilla; vacío = por defecto")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Archivo de salida; '-' = stdout; vacío = nombre del documento")
	return cmd
}

// ── summary ───────────────────────────────────────────────────────────────────

func summaryCmd(g *globalFlags) *cobra.Command {
	var fixturePath, id, templateID string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Imprime el resumen JSON (campos, tabla y totales) sin generar el PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, g, fixturePath)
			if err != nil {
				return err
			}
			defer e.close()
			target, err := recordTarget(e, id)
			if err != nil {
				return err
			}
			p, err := e.useCase().Preview(ctx, target, templates.Selection{TemplateID: templateID})
			if err != nil {
				return describe(err)
			}
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "Fixture YAML/JSON con record y company")
	cmd.Flags().StringVar(&id, "id", "", "Id del registro (con --db)")
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Id de plantilla; vacío = por defecto")
	return cmd
}

// ── templates ─────────────────────────────────────────────────────────────────

func templatesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Lista las plantillas disponibles (fijas y, con --db, personalizadas)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, g, "")
			if err != nil {
				return err
			}
			defer e.close()

			def := e.registry.GetDefaultTemplate(ctx).ID
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIPO\tCLASE\tLAYOUT\tNOMBRE\t")
			for _, t := range e.registry.ListTemplates(ctx) {
				mark := ""
				if t.ID == def {
					mark = "*"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t\n", t.ID, mark, t.Type, t.Kind, t.LayoutKey(), t.Name)
			}
			return w.Flush()
		},
	}
}

// ── validate ──────────────────────────────────────────────────────────────────

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <design_settings.json>",
		Short: "Valida un design_settings y lista sus problemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			schema, err := doctemplate.ParseSchema(data)
			if err != nil {
				return err
			}
			res := doctemplate.ValidateSchema(schema)
			if res.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), "válido")
				return nil
			}
			for _, p := range res.Problems {
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
			return fmt.Errorf("%d problemas en %v", len(res.Problems), res.Sections())
		},
	}
}

// ── token ─────────────────────────────────────────────────────────────────────

func tokenCmd() *cobra.Command {
	var userID, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para pruebas contra la API (usa JWT_SECRET)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET vacío")
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "cli", "Id de usuario")
	cmd.Flags().StringVar(&role, "role", jwt.RoleEditor, "Rol: admin, editor o viewer")
	return cmd
}

// ── helpers ───────────────────────────────────────────────────────────────────

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe agrega al error los problemas de datos, legibles en consola.
func describe(err error) error {
	var vErr *mapping.ValidationError
	if errors.As(err, &vErr) {
		msg := "datos incompletos:"
		for _, p := range vErr.Problems {
			msg += fmt.Sprintf("\n  - %s: %s", p.Field, p.Message)
		}
		return errors.New(msg)
	}
	return err
}
