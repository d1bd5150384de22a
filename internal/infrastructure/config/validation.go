package config

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/bnema/dockyard/internal/logging"
)

// validateConfig collects every invalid value into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(&config.Layout)...)
	validationErrors = append(validationErrors, validateCodec(&config.Codec)...)
	validationErrors = append(validationErrors, validateStorage(&config.Storage)...)
	validationErrors = append(validationErrors, validateServer(&config.Server)...)
	validationErrors = append(validationErrors, validateLogging(&config.Logging)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLayout(c *LayoutConfig) []string {
	var errs []string
	positive := map[string]int{
		"layout.header_height":  c.HeaderHeight,
		"layout.tab_char_width": c.TabCharWidth,
		"layout.border_size":    c.BorderSize,
	}
	for key, v := range positive {
		if v < 1 {
			errs = append(errs, key+" must be at least 1")
		}
	}
	nonNegative := map[string]int{
		"layout.splitter_size":  c.SplitterSize,
		"layout.tab_gap":        c.TabGap,
		"layout.tab_padding":    c.TabPadding,
		"layout.overflow_width": c.OverflowWidth,
		"layout.close_width":    c.CloseWidth,
		"layout.min_size":       c.MinSize,
		"layout.drag_threshold": c.DragThreshold,
		"layout.edge_margin":    c.EdgeMargin,
	}
	for key, v := range nonNegative {
		if v < 0 {
			errs = append(errs, key+" must be non-negative")
		}
	}
	if c.DefaultWeight <= 0 {
		errs = append(errs, "layout.default_weight must be positive")
	}
	if c.CenterZone <= 0 || c.CenterZone >= 1 {
		errs = append(errs, "layout.center_zone must be between 0 and 1 exclusive")
	}
	sort.Strings(errs)
	return errs
}

func validateCodec(c *CodecConfig) []string {
	switch c.UnknownContent {
	case "placeholder", "drop":
		return nil
	default:
		return []string{fmt.Sprintf("codec.unknown_content must be \"placeholder\" or \"drop\", got %q", c.UnknownContent)}
	}
}

func validateStorage(c *StorageConfig) []string {
	if c.SnapshotIntervalMs < 0 {
		return []string{"storage.snapshot_interval_ms must be non-negative"}
	}
	return nil
}

func validateServer(c *ServerConfig) []string {
	var errs []string
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errs = append(errs, fmt.Sprintf("server.listen_addr %q is not host:port", c.ListenAddr))
	}
	if c.ReadTimeoutSec < 1 || c.WriteTimeoutSec < 1 || c.ShutdownTimeoutSec < 1 {
		errs = append(errs, "server timeouts must be at least 1 second")
	}
	if c.MaxDocumentBytes < 1 {
		errs = append(errs, "server.max_document_bytes must be positive")
	}
	return errs
}

func validateLogging(c *LoggingConfig) []string {
	var errs []string
	if _, err := logging.ParseLevel(c.Level); err != nil {
		errs = append(errs, "logging.level: "+err.Error())
	}
	if c.Format != "console" && c.Format != "json" {
		errs = append(errs, fmt.Sprintf("logging.format must be \"console\" or \"json\", got %q", c.Format))
	}
	return errs
}
