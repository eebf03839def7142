package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/randalmurphal/metrictree/pkg/metrictree/style"
)

// Config holds reporting configuration for a metrics tree: where reports
// go, how they are framed, and which observability features are enabled.
type Config struct {
	// Style names a registered report style. Default: "classic".
	Style string `yaml:"style" json:"style"`

	// Output selects the report sink: "stdout", "stderr", or a file path
	// (appended to). Default: "stdout".
	Output string `yaml:"output" json:"output"`

	// Metrics enables OpenTelemetry metrics recording.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry span creation per report.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Snapshot configures the report archive.
	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SnapshotConfig configures the report archive.
type SnapshotConfig struct {
	// Path is the SQLite database path for archived reports.
	// Empty disables archiving; ":memory:" keeps the archive in memory.
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". Default: "info".
	Level string `yaml:"level" json:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Style:  style.Classic.Name,
		Output: "stdout",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is usable: the style must be
// registered and the output must be non-empty.
func (c Config) Validate() error {
	if c.Style != "" {
		if _, ok := style.Get(c.Style); !ok {
			return fmt.Errorf("unknown report style: %q", c.Style)
		}
	}
	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}
	return nil
}

// ResolveStyle returns the configured report style, falling back to
// style.Classic when no style is named.
func (c Config) ResolveStyle() (style.Style, error) {
	if c.Style == "" {
		return style.Classic, nil
	}
	s, ok := style.Get(c.Style)
	if !ok {
		return style.Style{}, fmt.Errorf("unknown report style: %q", c.Style)
	}
	return s, nil
}

// Writer opens the configured report sink. The caller owns the returned
// writer; closing it is a no-op for the standard streams.
func (c Config) Writer() (io.WriteCloser, error) {
	switch c.Output {
	case "", "stdout":
		return nopCloser{os.Stdout}, nil
	case "stderr":
		return nopCloser{os.Stderr}, nil
	default:
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open report sink: %w", err)
		}
		return f, nil
	}
}

// LogLevel converts the configured logging level to a slog.Level.
// Unknown values default to info.
func (c Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// nopCloser wraps a writer whose lifetime the process owns.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
