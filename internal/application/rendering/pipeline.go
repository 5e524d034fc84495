package rendering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// Mode modo de salida de un render.
type Mode string

const (
	ModeDownload Mode = "download"
	ModePreview  Mode = "preview"
	ModeUpload   Mode = "upload"
)

// ParseMode interpreta el modo pedido; vacío equivale a download.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDownload, nil
	case ModeDownload, ModePreview, ModeUpload:
		return m, nil
	default:
		return "", &RenderError{Code: CodeInvalidMode, Cause: fmt.Errorf("modo desconocido %q", s)}
	}
}

// ── Puertos ───────────────────────────────────────────────────────────────────

// Encoder convierte un árbol de página en bytes PDF.
type Encoder interface {
	Encode(ctx context.Context, doc Document) ([]byte, error)
}

// Viewer publica un documento bajo una URL temporal. revoke invalida la URL.
type Viewer interface {
	Publish(ctx context.Context, name string, data []byte) (url string, revoke func(), err error)
}

// BinaryStore almacena un documento y devuelve su URL.
type BinaryStore interface {
	Store(ctx context.Context, path string, data []byte) (string, error)
}

// Recorder recibe la duración y el resultado de cada render.
type Recorder interface {
	ObserveRender(layout string, mode Mode, outcome string, d time.Duration)
}

// ── Pipeline ──────────────────────────────────────────────────────────────────

// Options límites de un render. Los valores cero toman los del Pipeline.
type Options struct {
	Timeout    time.Duration
	HandleTTL  time.Duration
	UploadPath string
}

// Result salida de un render. Bytes siempre contiene el PDF; URL solo en
// preview (exitoso) y upload. FellBack indica que un preview terminó como
// descarga porque el visor falló.
type Result struct {
	Mode     Mode
	Bytes    []byte
	Filename string
	URL      string
	FellBack bool
}

const (
	defaultTimeout   = 30 * time.Second
	defaultHandleTTL = 10 * time.Minute
)

// Pipeline sanea, compone, codifica y entrega. Sin estado mutable entre
// llamadas: puede usarse concurrentemente.
type Pipeline struct {
	encoder   Encoder
	viewer    Viewer
	store     BinaryStore
	layouts   map[string]Layout
	defaults  Options
	log       zerolog.Logger
	recorder  Recorder
	afterFunc func(time.Duration, func())
}

// Option configura el Pipeline.
type Option func(*Pipeline)

// WithViewer visor para el modo preview.
func WithViewer(v Viewer) Option { return func(p *Pipeline) { p.viewer = v } }

// WithStore almacenamiento para el modo upload.
func WithStore(s BinaryStore) Option { return func(p *Pipeline) { p.store = s } }

// WithLayouts reemplaza las composiciones registradas.
func WithLayouts(l map[string]Layout) Option { return func(p *Pipeline) { p.layouts = l } }

// WithDefaults límites por defecto.
func WithDefaults(o Options) Option { return func(p *Pipeline) { p.defaults = o } }

// WithLogger logger del componente.
func WithLogger(l zerolog.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithRecorder métricas de render.
func WithRecorder(r Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

// WithAfterFunc programador de revocaciones (time.AfterFunc por defecto).
func WithAfterFunc(f func(time.Duration, func())) Option {
	return func(p *Pipeline) { p.afterFunc = f }
}

// NewPipeline construye el pipeline sobre un Encoder.
func NewPipeline(enc Encoder, opts ...Option) *Pipeline {
	p := &Pipeline{
		encoder:  enc,
		layouts:  DefaultLayouts(),
		defaults: Options{Timeout: defaultTimeout, HandleTTL: defaultHandleTTL},
		log:      zerolog.Nop(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Compose sanea el esquema y arma el árbol de página sin codificarlo.
func (p *Pipeline) Compose(tmpl doctemplate.Template, in mapping.DocumentInput) (Document, string) {
	tmpl = tmpl.Clone()
	schema, defects := doctemplate.Sanitize(tmpl.Schema)
	for _, d := range defects {
		p.log.Warn().Err(d).Str("template_id", tmpl.ID).Str("section", d.Section).
			Msg("sección de plantilla inválida reemplazada por valores por defecto")
	}
	tmpl.Schema = schema

	key := tmpl.LayoutKey()
	layout, ok := p.layouts[key]
	if !ok {
		p.log.Warn().Str("template_id", tmpl.ID).Str("layout", key).Msg("composición desconocida, se usa la genérica")
		key = doctemplate.LayoutGeneric
		layout = p.layouts[key]
		if layout == nil {
			layout = LayoutFunc(GenericLayout)
		}
	}
	return layout.Compose(tmpl, in), key
}

// RenderDocument produce el documento y lo entrega según mode.
//
// Errores: *RenderError si no hubo PDF (codificación fallida, vacía, vencida o
// cancelada); *UploadError si el PDF existe pero no pudo subirse.
func (p *Pipeline) RenderDocument(
	ctx context.Context,
	tmpl doctemplate.Template,
	in mapping.DocumentInput,
	mode Mode,
	opts Options,
) (*Result, error) {
	start := time.Now()
	opts = p.withDefaults(opts)

	if mode == "" {
		mode = ModeDownload
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	doc, layout := p.Compose(tmpl, in)
	data, err := p.encode(ctx, doc, opts.Timeout)
	if err != nil {
		p.observe(layout, mode, "error", start)
		return nil, err
	}

	res := &Result{Mode: mode, Bytes: data, Filename: Filename(tmpl, in)}

	switch mode {
	case ModePreview:
		if err := p.publish(ctx, res, opts.HandleTTL); err != nil {
			p.log.Warn().Err(err).Str("file", res.Filename).Msg("vista previa no disponible, se entrega como descarga")
			res.Mode = ModeDownload
			res.FellBack = true
			p.observe(layout, mode, "fallback", start)
			return res, nil
		}
	case ModeUpload:
		if err := p.upload(ctx, res, opts); err != nil {
			p.log.Error().Err(err).Str("file", res.Filename).Msg("error subiendo documento")
			p.observe(layout, mode, "error", start)
			return nil, err
		}
	}

	p.observe(layout, mode, "ok", start)
	return res, nil
}

// encode corre el Encoder en su propia goroutine. Si vence el plazo o el
// llamador cancela, el resultado tardío se descarta.
func (p *Pipeline) encode(ctx context.Context, doc Document, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Code: CodeCanceled, Cause: err}
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	encCtx := context.WithoutCancel(ctx)
	go func() {
		data, err := p.encoder.Encode(encCtx, doc)
		done <- result{data: data, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &RenderError{Code: CodeEncodeFailed, Cause: r.err}
		}
		if len(r.data) == 0 {
			return nil, &RenderError{Code: CodeEmptyOutput, Cause: errors.New("el codificador no produjo bytes")}
		}
		return r.data, nil
	case <-timer.C:
		return nil, &RenderError{Code: CodeTimeout, Cause: fmt.Errorf("sin resultado tras %s", timeout)}
	case <-ctx.Done():
		return nil, &RenderError{Code: CodeCanceled, Cause: ctx.Err()}
	}
}

func (p *Pipeline) publish(ctx context.Context, res *Result, ttl time.Duration) error {
	if p.viewer == nil {
		return ErrNoViewer
	}
	url, revoke, err := p.viewer.Publish(ctx, res.Filename, res.Bytes)
	if err != nil {
		return err
	}
	if revoke != nil {
		p.afterFunc(ttl, revoke)
	}
	res.URL = url
	return nil
}

func (p *Pipeline) upload(ctx context.Context, res *Result, opts Options) error {
	path := opts.UploadPath
	if path == "" {
		path = "documents/" + res.Filename
	}
	if p.store == nil {
		return &UploadError{Path: path, Cause: ErrNoStore}
	}

	uctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	url, err := p.store.Store(uctx, path, res.Bytes)
	if err != nil {
		return &UploadError{Path: path, Cause: err}
	}
	res.URL = url
	return nil
}

func (p *Pipeline) withDefaults(o Options) Options {
	if o.Timeout <= 0 {
		o.Timeout = p.defaults.Timeout
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.HandleTTL <= 0 {
		o.HandleTTL = p.defaults.HandleTTL
	}
	if o.HandleTTL <= 0 {
		o.HandleTTL = defaultHandleTTL
	}
	return o
}

func (p *Pipeline) observe(layout string, mode Mode, outcome string, start time.Time) {
	if p.recorder != nil {
		p.recorder.ObserveRender(layout, mode, outcome, time.Since(start))
	}
}

// Filename nombre determinista "<tipo>_<número>.pdf" con caracteres seguros.
func Filename(tmpl doctemplate.Template, in mapping.DocumentInput) string {
	kind := in.Field("document.type")
	if kind == "" {
		kind = string(tmpl.Type)
	}
	if kind == "" {
		kind = "document"
	}
	number := in.Field("document.number")
	if number == "" {
		number = "draft"
	}
	return safeName(kind) + "_" + safeName(number) + ".pdf"
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
}
