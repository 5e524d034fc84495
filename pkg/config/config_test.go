package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docengine/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Render.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Render.HandleTTL)
	assert.Equal(t, "tr", cfg.Render.DefaultLocale)
	assert.Equal(t, "TRY", cfg.Render.DefaultCurrency)
	assert.Zero(t, cfg.Render.TemplateTTL)
	assert.Empty(t, cfg.Render.AssetHosts)
	assert.Empty(t, cfg.Render.AssetDir)
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Entorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RENDER_TIMEOUT_SECONDS", "5")
	t.Setenv("RENDER_DEFAULT_LOCALE", "en")
	t.Setenv("STORAGE_BUCKET", "docs")
	t.Setenv("STORAGE_USE_PATH_STYLE", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RENDER_ASSET_HOSTS", " cdn.example.com, ,static.example.org ")
	t.Setenv("RENDER_ASSET_DIR", "/srv/assets")
	t.Setenv("RENDER_TEMPLATE_CACHE_TTL_SECONDS", "120")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Render.Timeout)
	assert.Equal(t, "en", cfg.Render.DefaultLocale)
	assert.True(t, cfg.Storage.Enabled())
	assert.True(t, cfg.Storage.UsePathStyle)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"cdn.example.com", "static.example.org"}, cfg.Render.AssetHosts)
	assert.Equal(t, "/srv/assets", cfg.Render.AssetDir)
	assert.Equal(t, 2*time.Minute, cfg.Render.TemplateTTL)
}

func TestLoad_TimeoutInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RENDER_TIMEOUT_SECONDS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_CredencialesIncompletas(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BUCKET", "docs")
	t.Setenv("STORAGE_ACCESS_KEY", "AKIA")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/x?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}
