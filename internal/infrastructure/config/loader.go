package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
	// skipNextReload is set by Save so the watcher does not re-read a
	// file whose contents are already in memory.
	skipNextReload bool
}

// NewManager creates a configuration manager for configFile. An empty
// path selects config.toml in the XDG config directory.
func NewManager(configFile string) (*Manager, error) {
	if configFile == "" {
		path, err := GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config file: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		configFile = path
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// DOCKYARD_SERVER_LISTEN_ADDR, DOCKYARD_STORAGE_DATABASE_PATH, ...
	v.SetEnvPrefix("DOCKYARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"logging.level":         "DOCKYARD_LOG_LEVEL",
		"logging.format":        "DOCKYARD_LOG_FORMAT",
		"storage.database_path": "DOCKYARD_DB",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{viper: v, configFile: configFile}, nil
}

// Load reads the configuration file, writing the defaults first if it
// does not exist, then applies environment overrides and validates.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()
	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}
	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configFile, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// reload unmarshals the current viper state. Must be called with m.mu held
// for write. reread re-reads the file first.
func (m *Manager) reload(reread bool) error {
	if reread {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w\nCheck for invalid values or type mismatches", m.configFile, err)
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	m.config = config
	return nil
}

func ensureDatabasePath(config *Config) error {
	if config.Storage.DatabasePath != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Storage.DatabasePath = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Codec.UnknownContent = strings.ToLower(strings.TrimSpace(config.Codec.UnknownContent))
	if config.Codec.UnknownContent == "" {
		config.Codec.UnknownContent = DefaultConfig().Codec.UnknownContent
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Server.ListenAddr = strings.TrimSpace(config.Server.ListenAddr)

	types := config.Codec.ContentTypes[:0]
	for _, t := range config.Codec.ContentTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	config.Codec.ContentTypes = types
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Codec.ContentTypes = append([]string(nil), m.config.Codec.ContentTypes...)
	return &configCopy
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	return m.configFile
}

// Save validates cfg and writes it to the configuration file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := WriteConfigOrdered(cfg, m.configFile); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		saved := *cfg
		m.config = &saved
		return nil
	}
	return m.reload(true)
}

// createDefaultConfig writes the default configuration file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return err
	}
	return WriteConfigOrdered(DefaultConfig(), m.configFile)
}

// setDefaults registers every key with viper, which also lets
// AutomaticEnv override keys missing from the file.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("layout.header_height", d.Layout.HeaderHeight)
	m.viper.SetDefault("layout.splitter_size", d.Layout.SplitterSize)
	m.viper.SetDefault("layout.tab_gap", d.Layout.TabGap)
	m.viper.SetDefault("layout.tab_char_width", d.Layout.TabCharWidth)
	m.viper.SetDefault("layout.tab_padding", d.Layout.TabPadding)
	m.viper.SetDefault("layout.overflow_width", d.Layout.OverflowWidth)
	m.viper.SetDefault("layout.close_width", d.Layout.CloseWidth)
	m.viper.SetDefault("layout.min_size", d.Layout.MinSize)
	m.viper.SetDefault("layout.default_weight", d.Layout.DefaultWeight)
	m.viper.SetDefault("layout.border_size", d.Layout.BorderSize)
	m.viper.SetDefault("layout.drag_threshold", d.Layout.DragThreshold)
	m.viper.SetDefault("layout.center_zone", d.Layout.CenterZone)
	m.viper.SetDefault("layout.edge_margin", d.Layout.EdgeMargin)

	m.viper.SetDefault("codec.unknown_content", d.Codec.UnknownContent)
	m.viper.SetDefault("codec.placeholder_type", d.Codec.PlaceholderType)
	m.viper.SetDefault("codec.content_types", d.Codec.ContentTypes)

	m.viper.SetDefault("storage.database_path", d.Storage.DatabasePath)
	m.viper.SetDefault("storage.snapshot_interval_ms", d.Storage.SnapshotIntervalMs)

	m.viper.SetDefault("server.listen_addr", d.Server.ListenAddr)
	m.viper.SetDefault("server.read_timeout_sec", d.Server.ReadTimeoutSec)
	m.viper.SetDefault("server.write_timeout_sec", d.Server.WriteTimeoutSec)
	m.viper.SetDefault("server.shutdown_timeout_sec", d.Server.ShutdownTimeoutSec)
	m.viper.SetDefault("server.max_document_bytes", d.Server.MaxDocumentBytes)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
}
