package viewer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/infrastructure/viewer"
)

func TestPublish_GetYRevoke(t *testing.T) {
	v := viewer.NewMemoryViewer("https://docs.example.com/")

	url, revoke, err := v.Publish(context.Background(), "quote_TKL-1.pdf", []byte("%PDF"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://docs.example.com/api/documents/view/"))

	id := strings.TrimPrefix(url, "https://docs.example.com"+viewer.ViewPath)
	e, ok := v.Get(id)
	require.True(t, ok)
	assert.Equal(t, "quote_TKL-1.pdf", e.Name)
	assert.Equal(t, []byte("%PDF"), e.Data)

	revoke()
	revoke()
	_, ok = v.Get(id)
	assert.False(t, ok)
	assert.Zero(t, v.Len())
}

func TestPublish_IdentificadoresDistintos(t *testing.T) {
	v := viewer.NewMemoryViewer("")
	a, _, err := v.Publish(context.Background(), "a.pdf", []byte("1"))
	require.NoError(t, err)
	b, _, err := v.Publish(context.Background(), "a.pdf", []byte("1"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPublish_Capacidad(t *testing.T) {
	v := viewer.NewMemoryViewer("", viewer.WithMaxEntries(1))
	_, revoke, err := v.Publish(context.Background(), "a.pdf", []byte("1"))
	require.NoError(t, err)

	_, _, err = v.Publish(context.Background(), "b.pdf", []byte("2"))
	assert.ErrorIs(t, err, viewer.ErrFull)

	revoke()
	_, _, err = v.Publish(context.Background(), "b.pdf", []byte("2"))
	assert.NoError(t, err)
}

func TestPublish_Vencimiento(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	v := viewer.NewMemoryViewer("", viewer.WithMaxAge(time.Minute), viewer.WithClock(func() time.Time { return now }))

	url, _, err := v.Publish(context.Background(), "a.pdf", []byte("1"))
	require.NoError(t, err)
	id := strings.TrimPrefix(url, viewer.ViewPath)

	now = now.Add(2 * time.Minute)
	_, ok := v.Get(id)
	assert.False(t, ok)

	_, _, err = v.Publish(context.Background(), "b.pdf", []byte("2"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())
}

func TestPublish_DocumentoVacio(t *testing.T) {
	_, _, err := viewer.NewMemoryViewer("").Publish(context.Background(), "a.pdf", nil)
	assert.Error(t, err)
}
