package config

// DefaultConfig returns the configuration used when the file sets nothing.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			HeaderHeight:  28,
			SplitterSize:  6,
			TabGap:        2,
			TabCharWidth:  8,
			TabPadding:    24,
			OverflowWidth: 24,
			CloseWidth:    16,
			MinSize:       40,
			DefaultWeight: 100,
			BorderSize:    200,
			DragThreshold: 4,
			CenterZone:    0.6,
			EdgeMargin:    10,
		},
		Codec: CodecConfig{
			UnknownContent:  "placeholder",
			PlaceholderType: "placeholder",
		},
		Storage: StorageConfig{
			SnapshotIntervalMs: 2000,
		},
		Server: ServerConfig{
			ListenAddr:         "127.0.0.1:7420",
			ReadTimeoutSec:     10,
			WriteTimeoutSec:    10,
			ShutdownTimeoutSec: 5,
			MaxDocumentBytes:   1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
