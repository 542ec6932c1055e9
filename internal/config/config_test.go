package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "inwo-storage.json", cfg.StorePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INWO_STORE=sqlite\nINWO_SEED=99\n"), 0o644))
	// godotenv does not override variables that are already set; make sure
	// these are unset and restored afterwards.
	t.Setenv("INWO_STORE", "")
	t.Setenv("INWO_SEED", "")
	require.NoError(t, os.Unsetenv("INWO_STORE"))
	require.NoError(t, os.Unsetenv("INWO_SEED"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestEnvOverridesDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INWO_ADDR=:1111\n"), 0o644))
	t.Setenv("INWO_ADDR", ":2222")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Addr)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("INWO_SEED", "not-a-number")
	_, err := Load(filepath.Join(t.TempDir(), "none.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn"}.Logger(&buf)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"k":"v"`)

	assert.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.Logger(&buf).GetLevel())
}

func TestCatalogWithTableCards(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1_transparent.png"), nil, 0o644))

	cat, err := Config{TableCardsDir: dir}.Catalog()
	require.NoError(t, err)
	_, ok := cat.Card("1_transparent")
	assert.True(t, ok)
	assert.Equal(t, 117, cat.Len())

	_, err = Config{CatalogFile: filepath.Join(dir, "missing.yaml")}.Catalog()
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	st, err := Config{StoreDriver: "memory"}.OpenStore()
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = Config{StoreDriver: "tape"}.OpenStore()
	assert.Error(t, err)
}
