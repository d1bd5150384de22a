package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("ENV", "")
	path := filepath.Join(dir, "conf", "config.toml")
	m, err := NewManager(path)
	require.NoError(t, err)
	return m, path
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	m, path := newTestManager(t)

	require.NoError(t, m.Load())

	_, err := os.Stat(path)
	require.NoError(t, err, "default config written")

	cfg := m.Get()
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Layout, cfg.Layout)
	assert.Equal(t, defaults.Server, cfg.Server)
	assert.Equal(t, "placeholder", cfg.Codec.UnknownContent)
	assert.Equal(t, filepath.Join(filepath.Dir(filepath.Dir(path)), "data", "dockyard", "dockyard.sqlite"), cfg.Storage.DatabasePath)
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
[layout]
header_height = 32
center_zone = 0.5

[codec]
unknown_content = "DROP"
content_types = ["editor", " ", "terminal"]
`), 0o644))

	t.Setenv("DOCKYARD_SERVER_LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("DOCKYARD_LOG_LEVEL", "debug")
	t.Setenv("DOCKYARD_DB", "/tmp/layouts.sqlite")

	require.NoError(t, m.Load())
	cfg := m.Get()

	assert.Equal(t, 32, cfg.Layout.HeaderHeight)
	assert.Equal(t, 0.5, cfg.Layout.CenterZone)
	assert.Equal(t, DefaultConfig().Layout.SplitterSize, cfg.Layout.SplitterSize, "unset keys keep defaults")
	assert.Equal(t, "drop", cfg.Codec.UnknownContent)
	assert.Equal(t, []string{"editor", "terminal"}, cfg.Codec.ContentTypes)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.ListenAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/layouts.sqlite", cfg.Storage.DatabasePath)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[layout]\ncenter_zone = 2.0\n"), 0o644))

	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.center_zone")
}

func TestManager_LoadRejectsBrokenTOML(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[layout\n"), 0o644))

	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestManager_SaveWritesAndReloads(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.Get()
	cfg.Layout.DragThreshold = 9
	require.NoError(t, m.Save(cfg))
	assert.Equal(t, 9, m.Get().Layout.DragThreshold)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "drag_threshold = 9")

	cfg.Logging.Format = "xml"
	assert.Error(t, m.Save(cfg))
	assert.Equal(t, "console", m.Get().Logging.Format)
}

func TestManager_GetBeforeLoadReturnsDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, DefaultConfig(), m.Get())
}

func TestConfig_Conversions(t *testing.T) {
	cfg := DefaultConfig()

	metrics := cfg.Layout.Metrics()
	assert.Equal(t, 28, metrics.HeaderHeight)
	assert.Equal(t, 8*3+24, metrics.Measure("abc"))

	assert.Equal(t, 40, cfg.Layout.Policy().MinSize)
	assert.Equal(t, 0.6, cfg.Layout.Interaction().DragDrop.CenterFraction)

	opts, err := cfg.CodecOptions()
	require.NoError(t, err)
	assert.Equal(t, "placeholder", opts.PlaceholderType)

	cfg.Codec.UnknownContent = "ignore"
	_, err = cfg.CodecOptions()
	assert.Error(t, err)
}
