// Package viewer guarda en memoria los PDF publicados en modo preview y los
// sirve bajo un identificador aleatorio hasta que se revocan.
package viewer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/docengine/internal/application/rendering"
)

var _ rendering.Viewer = (*MemoryViewer)(nil)

// ErrFull se devuelve cuando se alcanzó el máximo de vistas retenidas.
var ErrFull = errors.New("viewer: capacidad agotada")

// ViewPath ruta HTTP bajo la que se sirven las vistas.
const ViewPath = "/api/documents/view/"

// Entry documento publicado.
type Entry struct {
	Name      string
	Data      []byte
	CreatedAt time.Time
}

// MemoryViewer implementa rendering.Viewer. Las entradas viven hasta que se
// llama a revoke o vence maxAge.
type MemoryViewer struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	baseURL  string
	maxItems int
	maxAge   time.Duration
	now      func() time.Time
}

// Option configura el viewer.
type Option func(*MemoryViewer)

// WithMaxEntries máximo de vistas retenidas; <= 0 sin límite.
func WithMaxEntries(n int) Option {
	return func(v *MemoryViewer) { v.maxItems = n }
}

// WithMaxAge vigencia máxima de una vista aunque no se revoque.
func WithMaxAge(d time.Duration) Option {
	return func(v *MemoryViewer) { v.maxAge = d }
}

// WithClock reemplaza el reloj.
func WithClock(now func() time.Time) Option {
	return func(v *MemoryViewer) { v.now = now }
}

// NewMemoryViewer construye el viewer; baseURL es la URL pública del servicio.
func NewMemoryViewer(baseURL string, opts ...Option) *MemoryViewer {
	v := &MemoryViewer{
		entries: make(map[string]Entry),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Publish implementa rendering.Viewer.
func (v *MemoryViewer) Publish(ctx context.Context, name string, data []byte) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, errors.New("viewer: documento vacío")
	}
	id := uuid.NewString()

	v.mu.Lock()
	v.purgeLocked()
	if v.maxItems > 0 && len(v.entries) >= v.maxItems {
		v.mu.Unlock()
		return "", nil, ErrFull
	}
	v.entries[id] = Entry{Name: name, Data: data, CreatedAt: v.now()}
	v.mu.Unlock()

	var once sync.Once
	revoke := func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.entries, id)
			v.mu.Unlock()
		})
	}
	return v.baseURL + ViewPath + id, revoke, nil
}

// Get devuelve la vista si sigue vigente.
func (v *MemoryViewer) Get(id string) (Entry, bool) {
	v.mu.RLock()
	e, ok := v.entries[id]
	v.mu.RUnlock()
	if !ok || v.expired(e) {
		return Entry{}, false
	}
	return e, true
}

// Len número de vistas retenidas.
func (v *MemoryViewer) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

func (v *MemoryViewer) expired(e Entry) bool {
	return v.maxAge > 0 && v.now().Sub(e.CreatedAt) > v.maxAge
}

func (v *MemoryViewer) purgeLocked() {
	if v.maxAge <= 0 {
		return
	}
	for id, e := range v.entries {
		if v.expired(e) {
			delete(v.entries, id)
		}
	}
}
