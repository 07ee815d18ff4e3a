package config

import (
	"os"
	"path/filepath"
	"testing"

	"appresp/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolated(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{EnvFile: filepath.Join(dir, "missing.env"), SearchDirs: []string{dir}}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolated(t))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Data)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, model.SortDateDesc, cfg.DefaultSort)
	assert.True(t, cfg.Watch)
	assert.False(t, cfg.ReadOnly)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileThenEnv(t *testing.T) {
	opts := isolated(t)
	yaml := "data: apps.yaml\naddr: 0.0.0.0:9000\ndefault_sort: date-asc\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(opts.SearchDirs[0], "appresp.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "apps.yaml", cfg.Data)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, model.SortDateAsc, cfg.DefaultSort)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("APPRESP_ADDR", "127.0.0.1:4000")
	t.Setenv("APPRESP_READ_ONLY", "true")
	t.Setenv("APPRESP_LOG_LEVEL", "warn")
	cfg, err = Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Addr)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	opts := isolated(t)
	opts.EnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte("APPRESP_DATA=from-dotenv.json\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("APPRESP_DATA") })

	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.Data)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	opts := isolated(t)
	opts.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Load(opts)
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("APPRESP_DEFAULT_SORT", "by-name")
	_, err := Load(isolated(t))
	assert.ErrorContains(t, err, "invalid sort order")
}
