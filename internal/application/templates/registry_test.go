package templates_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/application/templates"
	"github.com/jhoicas/docengine/internal/domain"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

type fakeSource struct {
	mu    sync.Mutex
	list  []doctemplate.Template
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (f *fakeSource) ListCustomTemplates(ctx context.Context) ([]doctemplate.Template, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]doctemplate.Template(nil), f.list...), nil
}

func (f *fakeSource) set(list []doctemplate.Template) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = list
}

type countingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *countingObserver) ObserveTemplateRefresh(outcome string, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func custom(id string, created time.Time, isDefault bool) doctemplate.Template {
	return doctemplate.Template{
		ID: id, Name: id, Schema: doctemplate.DefaultSchema(),
		IsDefault: isDefault, CreatedAt: created,
	}
}

var base = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func ids(list []doctemplate.Template) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

// ── Listado ───────────────────────────────────────────────────────────────────

func TestListTemplates_FijasPrimeroLuegoRecientes(t *testing.T) {
	src := &fakeSource{list: []doctemplate.Template{
		custom("old", base, false),
		custom("new", base.Add(48*time.Hour), false),
		custom("mid", base.Add(24*time.Hour), false),
	}}
	reg := templates.NewRegistry(src)

	got := reg.ListTemplates(context.Background())
	assert.Equal(t, []string{
		templates.FixedClassicID, templates.FixedCompactID, templates.FixedInvoiceID,
		"new", "mid", "old",
	}, ids(got))

	for _, tpl := range got[3:] {
		assert.Equal(t, doctemplate.KindCustom, tpl.Kind)
		assert.Equal(t, doctemplate.LayoutGeneric, tpl.LayoutKey())
	}
}

func TestListTemplates_SinFuenteSoloFijas(t *testing.T) {
	reg := templates.NewRegistry(nil)
	assert.Len(t, reg.ListTemplates(context.Background()), 3)
}

func TestListTemplates_FuenteFallaSoloFijas(t *testing.T) {
	obs := &countingObserver{}
	reg := templates.NewRegistry(&fakeSource{err: errors.New("db caída")}, templates.WithObserver(obs))

	got := reg.ListTemplates(context.Background())
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"error"}, obs.outcomes)
}

func TestListTemplates_IdReservadoSeIgnora(t *testing.T) {
	src := &fakeSource{list: []doctemplate.Template{custom(templates.FixedClassicID, base, true)}}
	reg := templates.NewRegistry(src)

	got := reg.ListTemplates(context.Background())
	assert.Len(t, got, 3)
	tpl, ok := reg.GetTemplate(context.Background(), templates.FixedClassicID)
	require.True(t, ok)
	assert.Equal(t, doctemplate.KindFixed, tpl.Kind)
}

// ── Búsqueda y defecto ────────────────────────────────────────────────────────

func TestGetTemplate(t *testing.T) {
	reg := templates.NewRegistry(&fakeSource{list: []doctemplate.Template{custom("c1", base, false)}})
	ctx := context.Background()

	tpl, ok := reg.GetTemplate(ctx, "c1")
	require.True(t, ok)
	assert.Equal(t, "c1", tpl.ID)

	tpl, ok = reg.GetTemplate(ctx, templates.FixedCompactID)
	require.True(t, ok)
	assert.Equal(t, doctemplate.LayoutCompact, tpl.LayoutKey())

	_, ok = reg.GetTemplate(ctx, "nope")
	assert.False(t, ok)
}

func TestGetDefaultTemplate_PersonalizadaMarcada(t *testing.T) {
	reg := templates.NewRegistry(&fakeSource{list: []doctemplate.Template{
		custom("a", base, false),
		custom("b", base.Add(time.Hour), true),
	}})
	assert.Equal(t, "b", reg.GetDefaultTemplate(context.Background()).ID)
}

func TestGetDefaultTemplate_PrimeraFija(t *testing.T) {
	reg := templates.NewRegistry(&fakeSource{list: []doctemplate.Template{custom("a", base, false)}})
	assert.Equal(t, templates.FixedClassicID, reg.GetDefaultTemplate(context.Background()).ID)
}

func TestResolve(t *testing.T) {
	reg := templates.NewRegistry(&fakeSource{list: []doctemplate.Template{custom("c1", base, false)}})
	ctx := context.Background()

	tpl, err := reg.Resolve(ctx, templates.Selection{})
	require.NoError(t, err)
	assert.Equal(t, templates.FixedClassicID, tpl.ID)

	tpl, err = reg.Resolve(ctx, templates.Selection{TemplateID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", tpl.ID)

	_, err = reg.Resolve(ctx, templates.Selection{TemplateID: "borrada"})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

// ── Caché y recarga ───────────────────────────────────────────────────────────

func TestRefresh_ReemplazoCompleto(t *testing.T) {
	src := &fakeSource{list: []doctemplate.Template{custom("a", base, false), custom("b", base, false)}}
	reg := templates.NewRegistry(src)
	ctx := context.Background()

	assert.Len(t, reg.ListTemplates(ctx), 5)

	src.set([]doctemplate.Template{custom("c", base, false)})
	assert.Len(t, reg.ListTemplates(ctx), 5, "sin recarga se usa la caché")

	require.NoError(t, reg.Refresh(ctx))
	got := reg.ListTemplates(ctx)
	assert.Equal(t, "c", got[len(got)-1].ID)
	_, ok := reg.GetTemplate(ctx, "a")
	assert.False(t, ok)
}

func TestRefresh_ErrorConservaCacheAnterior(t *testing.T) {
	src := &fakeSource{list: []doctemplate.Template{custom("a", base, false)}}
	reg := templates.NewRegistry(src)
	ctx := context.Background()
	require.NoError(t, reg.Refresh(ctx))

	src.err = errors.New("timeout")
	assert.Error(t, reg.Refresh(ctx))

	_, ok := reg.GetTemplate(ctx, "a")
	assert.True(t, ok)
}

func TestRefresh_LlamadasConcurrentesComparten(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	reg := templates.NewRegistry(src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Refresh(context.Background())
		}()
	}
	wg.Wait()
	assert.Less(t, src.calls.Load(), int32(8))
}

// Un valor devuelto puede modificarse sin afectar la caché.
func TestGetTemplate_DevuelveCopia(t *testing.T) {
	reg := templates.NewRegistry(nil)
	ctx := context.Background()

	tpl, ok := reg.GetTemplate(ctx, templates.FixedClassicID)
	require.True(t, ok)
	tpl.Schema.LineTable.Columns[0].Label = "mutado"

	again, _ := reg.GetTemplate(ctx, templates.FixedClassicID)
	assert.Equal(t, "#", again.Schema.LineTable.Columns[0].Label)
}

func TestFixedTemplates_EsquemasValidos(t *testing.T) {
	for _, tpl := range templates.NewRegistry(nil).ListTemplates(context.Background()) {
		assert.True(t, doctemplate.ValidateSchema(tpl.Schema).Valid(), tpl.ID)
	}
}

// ── TTL ───────────────────────────────────────────────────────────────────────

func TestTTL_RecargaAlVencer(t *testing.T) {
	now := base
	src := &fakeSource{list: []doctemplate.Template{custom("a", base, false)}}
	reg := templates.NewRegistry(src, templates.WithTTL(time.Minute),
		templates.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, ok := reg.GetTemplate(ctx, "a")
	require.True(t, ok)
	src.set([]doctemplate.Template{custom("b", base, false)})

	now = now.Add(30 * time.Second)
	_, ok = reg.GetTemplate(ctx, "b")
	assert.False(t, ok, "caché vigente")

	now = now.Add(time.Minute)
	_, ok = reg.GetTemplate(ctx, "b")
	assert.True(t, ok, "caché vencida se recarga")
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestTTL_FalloConservaListaAnterior(t *testing.T) {
	now := base
	src := &fakeSource{list: []doctemplate.Template{custom("a", base, false)}}
	reg := templates.NewRegistry(src, templates.WithTTL(time.Minute),
		templates.WithClock(func() time.Time { return now }))
	ctx := context.Background()
	require.NoError(t, reg.Refresh(ctx))

	src.mu.Lock()
	src.err = errors.New("db caída")
	src.mu.Unlock()
	now = now.Add(2 * time.Minute)

	_, ok := reg.GetTemplate(ctx, "a")
	assert.True(t, ok)
}

func TestCarga_FalloNoReintentaEnCadaLectura(t *testing.T) {
	src := &fakeSource{err: errors.New("db caída")}
	reg := templates.NewRegistry(src)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.Len(t, reg.ListTemplates(ctx), 3)
		_, ok := reg.GetTemplate(ctx, "a")
		assert.False(t, ok)
	}
	assert.Equal(t, int32(1), src.calls.Load())

	src.mu.Lock()
	src.err = nil
	src.list = []doctemplate.Template{custom("a", base, false)}
	src.mu.Unlock()

	require.NoError(t, reg.Refresh(ctx))
	_, ok := reg.GetTemplate(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestTTL_FalloReintentaTrasVencer(t *testing.T) {
	now := base
	src := &fakeSource{err: errors.New("db caída")}
	reg := templates.NewRegistry(src, templates.WithTTL(time.Minute),
		templates.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	reg.ListTemplates(ctx)
	now = now.Add(30 * time.Second)
	reg.ListTemplates(ctx)
	assert.Equal(t, int32(1), src.calls.Load())

	now = now.Add(time.Minute)
	reg.ListTemplates(ctx)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestSinTTL_NoRecargaSola(t *testing.T) {
	now := base
	src := &fakeSource{list: []doctemplate.Template{custom("a", base, false)}}
	reg := templates.NewRegistry(src, templates.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, ok := reg.GetTemplate(ctx, "a")
	require.True(t, ok)
	src.set([]doctemplate.Template{custom("b", base, false)})

	now = now.Add(24 * time.Hour)
	_, ok = reg.GetTemplate(ctx, "b")
	assert.False(t, ok)
	assert.Equal(t, int32(1), src.calls.Load())
}
