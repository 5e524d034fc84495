package pdf_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/internal/infrastructure/pdf"
)

func TestHTTPAssetLoader_RechazaOrigenes(t *testing.T) {
	loader := pdf.NewHTTPAssetLoader(time.Second)

	for _, src := range []string{
		"/etc/passwd",
		"logo.png",
		"file:///etc/passwd",
		"ftp://cdn.example.com/logo.png",
		"http://localhost/logo.png",
		"http://127.0.0.1:8080/admin",
		"http://10.0.0.5/logo.png",
		"http://169.254.169.254/latest/meta-data/",
		"http://[::1]/logo.png",
		"https:///logo.png",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := loader.Load(context.Background(), src)
			assert.ErrorIs(t, err, pdf.ErrAssetRejected)
		})
	}
}

func TestHTTPAssetLoader_ListaDeHosts(t *testing.T) {
	loader := pdf.NewHTTPAssetLoader(time.Second, pdf.WithAllowedHosts("cdn.example.com"))

	_, err := loader.Load(context.Background(), "https://evil.example.org/logo.png")
	assert.ErrorIs(t, err, pdf.ErrAssetRejected)
	_, err = loader.Load(context.Background(), "https://notcdn.example.com/logo.png")
	assert.ErrorIs(t, err, pdf.ErrAssetRejected)
}

func TestHTTPAssetLoader_DescargaHostPermitido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	loader := pdf.NewHTTPAssetLoader(time.Second, pdf.WithAllowedHosts("127.0.0.1"))

	data, err := loader.Load(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = loader.Load(context.Background(), srv.URL+"/otro.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pdf.ErrAssetRejected)
}

func TestHTTPAssetLoader_DirectorioDeRecursos(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logos"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos", "logo.png"), []byte("png"), 0o600))
	loader := pdf.NewHTTPAssetLoader(time.Second, pdf.WithAssetDir(dir))

	data, err := loader.Load(context.Background(), "logos/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	for _, src := range []string{"../secreto.png", "logos/../../secreto.png", filepath.Join(dir, "logos", "logo.png")} {
		_, err := loader.Load(context.Background(), src)
		assert.ErrorIs(t, err, pdf.ErrAssetRejected, src)
	}

	_, err = loader.Load(context.Background(), "logos/no-existe.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pdf.ErrAssetRejected)
}

func TestHTTPAssetLoader_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewHTTPAssetLoader(time.Second).Load(ctx, "https://cdn.example.com/logo.png")
	assert.ErrorIs(t, err, context.Canceled)
}
