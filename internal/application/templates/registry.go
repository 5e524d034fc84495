// Package templates cataloga las plantillas disponibles: fijas (en código) y
// personalizadas (persistidas), con caché en memoria de estas últimas.
package templates

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/docengine/internal/domain"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/repository"
)

// RefreshObserver recibe el resultado de cada recarga del catálogo.
type RefreshObserver interface {
	ObserveTemplateRefresh(outcome string, count int)
}

// Selection plantilla elegida por el llamador (sesión, query param, flag).
// Vacía significa "la plantilla por defecto".
type Selection struct {
	TemplateID string
}

// Registry une plantillas fijas y personalizadas.
//
// La caché de personalizadas se reemplaza completa en cada recarga; los
// lectores nunca ven una lista a medio actualizar y los valores devueltos son
// copias, así que un render en curso no se ve afectado por una recarga.
type Registry struct {
	source   repository.TemplateSource
	fixed    []doctemplate.Template
	custom   atomic.Pointer[snapshot]
	group    singleflight.Group
	log      zerolog.Logger
	observer RefreshObserver
	ttl      time.Duration
	now      func() time.Time
}

type snapshot struct {
	list     []doctemplate.Template
	loadedAt time.Time
}

// Option configura el Registry.
type Option func(*Registry)

// WithLogger logger del componente.
func WithLogger(l zerolog.Logger) Option { return func(r *Registry) { r.log = l } }

// WithObserver observador de recargas (métricas).
func WithObserver(o RefreshObserver) Option { return func(r *Registry) { r.observer = o } }

// WithTTL vigencia de la caché; vencida, la siguiente lectura recarga. Cero
// significa sin vencimiento (solo Refresh explícito).
func WithTTL(d time.Duration) Option { return func(r *Registry) { r.ttl = d } }

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option { return func(r *Registry) { r.now = now } }

// NewRegistry construye el catálogo. source puede ser nil (solo plantillas fijas).
func NewRegistry(source repository.TemplateSource, opts ...Option) *Registry {
	r := &Registry{source: source, fixed: fixedTemplates(), log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Refresh vuelve a leer las plantillas personalizadas. Las llamadas
// concurrentes comparten una sola lectura.
func (r *Registry) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		if r.source == nil {
			r.custom.Store(&snapshot{loadedAt: r.now()})
			return nil, nil
		}
		list, err := r.source.ListCustomTemplates(ctx)
		if err != nil {
			r.markFailed()
			r.observe("error", 0)
			return nil, fmt.Errorf("templates: listar personalizadas: %w", err)
		}

		fresh := make([]doctemplate.Template, 0, len(list))
		for _, t := range list {
			if strings.HasPrefix(t.ID, FixedPrefix) {
				r.log.Warn().Str("template_id", t.ID).Msg("plantilla personalizada con id reservado, se ignora")
				continue
			}
			t = t.Clone()
			t.Kind = doctemplate.KindCustom
			t.Layout = ""
			fresh = append(fresh, t)
		}
		sort.SliceStable(fresh, func(i, j int) bool {
			return fresh[i].CreatedAt.After(fresh[j].CreatedAt)
		})

		r.custom.Store(&snapshot{list: fresh, loadedAt: r.now()})
		r.observe("ok", len(fresh))
		r.log.Debug().Int("count", len(fresh)).Msg("catálogo de plantillas recargado")
		return nil, nil
	})
	return err
}

// ListTemplates fijas primero (en orden de declaración) y luego personalizadas
// de la más reciente a la más antigua.
func (r *Registry) ListTemplates(ctx context.Context) []doctemplate.Template {
	custom := r.customTemplates(ctx)
	out := make([]doctemplate.Template, 0, len(r.fixed)+len(custom))
	for _, t := range r.fixed {
		out = append(out, t.Clone())
	}
	for _, t := range custom {
		out = append(out, t.Clone())
	}
	return out
}

// GetTemplate busca por id; false si no está en la lista combinada.
func (r *Registry) GetTemplate(ctx context.Context, id string) (doctemplate.Template, bool) {
	for _, t := range r.fixed {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	if strings.HasPrefix(id, FixedPrefix) {
		return doctemplate.Template{}, false
	}
	for _, t := range r.customTemplates(ctx) {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return doctemplate.Template{}, false
}

// GetDefaultTemplate la personalizada marcada por defecto o, si no hay, la
// primera fija. Siempre devuelve una plantilla válida, incluso si la lectura de
// personalizadas falla. No es estable entre cambios del catálogo: para
// re-renderizar, resolver por id.
func (r *Registry) GetDefaultTemplate(ctx context.Context) doctemplate.Template {
	for _, t := range r.customTemplates(ctx) {
		if t.IsDefault {
			return t.Clone()
		}
	}
	return r.fixed[0].Clone()
}

// Resolve aplica la selección del llamador.
func (r *Registry) Resolve(ctx context.Context, sel Selection) (doctemplate.Template, error) {
	if strings.TrimSpace(sel.TemplateID) == "" {
		return r.GetDefaultTemplate(ctx), nil
	}
	t, ok := r.GetTemplate(ctx, sel.TemplateID)
	if !ok {
		return doctemplate.Template{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, sel.TemplateID)
	}
	return t, nil
}

// customTemplates lista en caché; la primera lectura (o la primera tras
// vencer el TTL) la carga bajo demanda. Una carga fallida también queda en
// caché con la lista anterior (o ninguna): no se reintenta hasta el próximo
// Refresh o hasta que venza el TTL.
func (r *Registry) customTemplates(ctx context.Context) []doctemplate.Template {
	snap := r.custom.Load()
	if snap != nil && !r.stale(snap) {
		return snap.list
	}
	if err := r.Refresh(ctx); err != nil {
		r.log.Warn().Err(err).Msg("no se pudieron cargar plantillas personalizadas; se usa la caché anterior")
	}
	if snap = r.custom.Load(); snap != nil {
		return snap.list
	}
	return nil
}

// markFailed reinicia la vigencia conservando la lista anterior.
func (r *Registry) markFailed() {
	next := &snapshot{loadedAt: r.now()}
	if prev := r.custom.Load(); prev != nil {
		next.list = prev.list
	}
	r.custom.Store(next)
}

func (r *Registry) stale(s *snapshot) bool {
	return r.ttl > 0 && r.now().Sub(s.loadedAt) >= r.ttl
}

func (r *Registry) observe(outcome string, n int) {
	if r.observer != nil {
		r.observer.ObserveTemplateRefresh(outcome, n)
	}
}
