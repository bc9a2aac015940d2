package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/editor"
	"github.com/dshills/bluebook/internal/logging"
	"github.com/dshills/bluebook/internal/tracing"
)

// Config is the complete bluebook configuration.
type Config struct {
	Engine  EngineConfig   `toml:"engine" yaml:"engine" mapstructure:"engine"`
	Log     LogConfig      `toml:"log" yaml:"log" mapstructure:"log"`
	Tracing tracing.Config `toml:"tracing" yaml:"tracing" mapstructure:"tracing"`
}

// EngineConfig configures documents.
type EngineConfig struct {
	// Backend is "string", "rope" or "sequence".
	Backend string `toml:"backend" yaml:"backend" mapstructure:"backend"`

	// Drift is "inside" or "outside".
	Drift string `toml:"drift" yaml:"drift" mapstructure:"drift"`

	// LineEnding is "lf" or "crlf".
	LineEnding string `toml:"line_ending" yaml:"line_ending" mapstructure:"line_ending"`

	// Normalization is the form applied to pasted text: "none", "nfc",
	// "nfd", "nfkc" or "nfkd".
	Normalization string `toml:"normalization" yaml:"normalization" mapstructure:"normalization"`

	MaxUndoEntries int `toml:"max_undo_entries" yaml:"max_undo_entries" mapstructure:"max_undo_entries"`
	MaxChanges     int `toml:"max_changes" yaml:"max_changes" mapstructure:"max_changes"`

	// MaxPreContext bounds how far back grapheme segmentation may read.
	MaxPreContext int `toml:"max_pre_context" yaml:"max_pre_context" mapstructure:"max_pre_context"`

	// SegmentCacheTTL is a duration string such as "5m".
	SegmentCacheTTL string `toml:"segment_cache_ttl" yaml:"segment_cache_ttl" mapstructure:"segment_cache_ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Backend:         "rope",
			Drift:           "inside",
			LineEnding:      "lf",
			Normalization:   "nfc",
			MaxUndoEntries:  1000,
			MaxChanges:      10000,
			MaxPreContext:   4096,
			SegmentCacheTTL: "5m",
		},
		Log:     LogConfig{Level: "info"},
		Tracing: tracing.DefaultConfig(),
	}
}

// BackendKind parses Backend.
func (c EngineConfig) BackendKind() (buffer.BackendKind, error) {
	return buffer.ParseBackendKind(c.Backend)
}

// DriftMode parses Drift.
func (c EngineConfig) DriftMode() (buffer.Drift, error) {
	return buffer.ParseDrift(c.Drift)
}

// LineEndingMode parses LineEnding.
func (c EngineConfig) LineEndingMode() (buffer.LineEnding, error) {
	return buffer.ParseLineEnding(c.LineEnding)
}

// NormalizationForm parses Normalization.
func (c EngineConfig) NormalizationForm() (editor.Normalization, error) {
	return editor.ParseNormalization(c.Normalization)
}

// CacheTTL parses SegmentCacheTTL. An empty value means no expiry.
func (c EngineConfig) CacheTTL() (time.Duration, error) {
	if c.SegmentCacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.SegmentCacheTTL)
}

// LogLevel parses the log level.
func (c LogConfig) LogLevel() logging.Level {
	return logging.ParseLevel(c.Level)
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	check := func(path string, value any, err error) {
		if err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: err.Error(), Value: value})
		}
	}

	e := c.Engine
	_, err := e.BackendKind()
	check("engine.backend", e.Backend, err)
	_, err = e.DriftMode()
	check("engine.drift", e.Drift, err)
	_, err = e.LineEndingMode()
	check("engine.line_ending", e.LineEnding, err)
	_, err = e.NormalizationForm()
	check("engine.normalization", e.Normalization, err)
	ttl, err := e.CacheTTL()
	check("engine.segment_cache_ttl", e.SegmentCacheTTL, err)
	if err == nil && ttl < 0 {
		check("engine.segment_cache_ttl", e.SegmentCacheTTL, errors.New("must not be negative"))
	}

	for _, n := range []struct {
		path  string
		value int
	}{
		{"engine.max_undo_entries", e.MaxUndoEntries},
		{"engine.max_changes", e.MaxChanges},
		{"engine.max_pre_context", e.MaxPreContext},
	} {
		if n.value < 1 {
			check(n.path, n.value, fmt.Errorf("must be at least 1"))
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		check("log.level", c.Log.Level, errors.New("unknown level"))
	}

	switch c.Tracing.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		check("tracing.exporter", c.Tracing.Exporter, errors.New("unsupported exporter"))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		check("tracing.sample_rate", c.Tracing.SampleRate, errors.New("must be within [0, 1]"))
	}

	return errors.Join(errs...)
}
