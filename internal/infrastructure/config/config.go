// Package config loads the dockyard configuration with Viper: TOML file
// under the XDG config directory, DOCKYARD_* environment overrides, and
// hot reload through fsnotify.
package config

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete dockyard configuration.
type Config struct {
	// Layout holds engine metrics and gesture tuning.
	Layout LayoutConfig `mapstructure:"layout" toml:"layout" json:"layout"`
	// Codec controls how layout documents are loaded.
	Codec   CodecConfig   `mapstructure:"codec" toml:"codec" json:"codec"`
	Storage StorageConfig `mapstructure:"storage" toml:"storage" json:"storage"`
	Server  ServerConfig  `mapstructure:"server" toml:"server" json:"server"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
}

// LayoutConfig holds the pixel metrics and defaults of the layout engine.
type LayoutConfig struct {
	HeaderHeight  int `mapstructure:"header_height" toml:"header_height" json:"header_height" jsonschema:"minimum=1"`
	SplitterSize  int `mapstructure:"splitter_size" toml:"splitter_size" json:"splitter_size" jsonschema:"minimum=0"`
	TabGap        int `mapstructure:"tab_gap" toml:"tab_gap" json:"tab_gap" jsonschema:"minimum=0"`
	TabCharWidth  int `mapstructure:"tab_char_width" toml:"tab_char_width" json:"tab_char_width" jsonschema:"minimum=1"`
	TabPadding    int `mapstructure:"tab_padding" toml:"tab_padding" json:"tab_padding" jsonschema:"minimum=0"`
	OverflowWidth int `mapstructure:"overflow_width" toml:"overflow_width" json:"overflow_width" jsonschema:"minimum=0"`
	CloseWidth    int `mapstructure:"close_width" toml:"close_width" json:"close_width" jsonschema:"minimum=0"`
	// MinSize is the pixel floor for nodes that do not set their own.
	MinSize       int     `mapstructure:"min_size" toml:"min_size" json:"min_size" jsonschema:"minimum=0"`
	DefaultWeight float64 `mapstructure:"default_weight" toml:"default_weight" json:"default_weight" jsonschema:"exclusiveMinimum=0"`
	BorderSize    int     `mapstructure:"border_size" toml:"border_size" json:"border_size" jsonschema:"minimum=1"`
	// DragThreshold is the pointer travel in pixels before a press becomes a drag.
	DragThreshold int `mapstructure:"drag_threshold" toml:"drag_threshold" json:"drag_threshold" jsonschema:"minimum=0"`
	// CenterZone is the share of each axis covered by a tabset's center drop zone.
	CenterZone float64 `mapstructure:"center_zone" toml:"center_zone" json:"center_zone" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1"`
	EdgeMargin int     `mapstructure:"edge_margin" toml:"edge_margin" json:"edge_margin" jsonschema:"minimum=0"`
}

// CodecConfig controls loading of layout documents.
type CodecConfig struct {
	// UnknownContent is "placeholder" or "drop".
	UnknownContent  string `mapstructure:"unknown_content" toml:"unknown_content" json:"unknown_content" jsonschema:"enum=placeholder,enum=drop"`
	PlaceholderType string `mapstructure:"placeholder_type" toml:"placeholder_type" json:"placeholder_type"`
	// ContentTypes lists the content types the server and CLI accept.
	// Empty accepts any type.
	ContentTypes []string `mapstructure:"content_types" toml:"content_types" json:"content_types"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DatabasePath defaults to dockyard.sqlite under the XDG data directory.
	DatabasePath       string `mapstructure:"database_path" toml:"database_path" json:"database_path"`
	SnapshotIntervalMs int    `mapstructure:"snapshot_interval_ms" toml:"snapshot_interval_ms" json:"snapshot_interval_ms" jsonschema:"minimum=0"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	ListenAddr         string `mapstructure:"listen_addr" toml:"listen_addr" json:"listen_addr"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" toml:"read_timeout_sec" json:"read_timeout_sec" jsonschema:"minimum=1"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" toml:"write_timeout_sec" json:"write_timeout_sec" jsonschema:"minimum=1"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" toml:"shutdown_timeout_sec" json:"shutdown_timeout_sec" jsonschema:"minimum=1"`
	// MaxDocumentBytes caps the body of layout uploads.
	MaxDocumentBytes int64 `mapstructure:"max_document_bytes" toml:"max_document_bytes" json:"max_document_bytes" jsonschema:"minimum=1"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}
