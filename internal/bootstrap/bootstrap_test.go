package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/config"
	"tienda/internal/seed"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Store: config.StoreConfig{Driver: config.DriverFile, CatalogPath: filepath.Join(dir, "productos.txt")},
		Cart:  config.CartConfig{Driver: config.DriverFile, Path: filepath.Join(dir, "carrito.txt")},
	}
}

func TestOpenFileStores(t *testing.T) {
	cfg := fileConfig(t)
	res, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(res.Close)

	require.NoError(t, res.Products.Save(context.Background(), seed.Products()))
	_, err = os.Stat(cfg.Store.CatalogPath)
	require.NoError(t, err)

	lines, err := res.Cart.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Cart.Driver = "s3"

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.log")
	log, closer, err := NewLogger("tienda", config.AppConfig{LogLevel: "info", LogFormat: "json", LogFile: path})
	require.NoError(t, err)

	log.Info().Msg("hola")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hola"`)
	assert.Contains(t, string(data), `"service":"tienda"`)
}

func TestDefaultLogLevelKeepsWarningsOffTheConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tienda.log")
	t.Setenv("TIENDA_LOG_FILE", path)
	cfg, err := config.Load()
	require.NoError(t, err)

	log, closer, err := NewLogger("tienda", cfg.App)
	require.NoError(t, err)
	log.Warn().Msg("console: action failed")
	log.Error().Msg("catalog: save failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "action failed")
	assert.Contains(t, string(data), "save failed")
}
