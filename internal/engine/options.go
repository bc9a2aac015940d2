package engine

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/bluebook/internal/config"
	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/editor"
	"github.com/dshills/bluebook/internal/engine/history"
	"github.com/dshills/bluebook/internal/engine/segment"
	"github.com/dshills/bluebook/internal/engine/span"
	"github.com/dshills/bluebook/internal/engine/tracking"
	"github.com/dshills/bluebook/internal/logging"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries  = history.DefaultMaxEntries
	DefaultMaxChanges      = tracking.DefaultMaxChanges
	DefaultSegmentCacheTTL = 5 * time.Minute
)

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial text.
func WithContent(content string) Option {
	return func(d *Document) { d.initContent = content }
}

// WithBackend selects the buffer storage.
func WithBackend(kind buffer.BackendKind) Option {
	return func(d *Document) { d.backend = kind }
}

// WithDrift sets how span edges react to text inserted at them.
func WithDrift(drift buffer.Drift) Option {
	return func(d *Document) { d.drift = drift }
}

// WithLineEnding sets the line break used by InsertNewLine and pastes.
func WithLineEnding(le buffer.LineEnding) Option {
	return func(d *Document) { d.lineEnding = le }
}

// WithNormalization sets the Unicode normalization applied to pastes.
func WithNormalization(n editor.Normalization) Option {
	return func(d *Document) { d.normalization = n }
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithMaxChanges sets the change log capacity.
func WithMaxChanges(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxChanges = max
		}
	}
}

// WithMaxPreContext bounds how far back grapheme segmentation may read.
func WithMaxPreContext(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.maxPreContext = n
		}
	}
}

// WithSegmentCacheTTL sets how long rendered segments stay cached. Zero
// or less keeps them until the document changes.
func WithSegmentCacheTTL(ttl time.Duration) Option {
	return func(d *Document) { d.cacheTTL = ttl }
}

// WithRegistry sets the attribute registry for spans.
func WithRegistry(reg *span.Registry) Option {
	return func(d *Document) { d.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTracer sets the tracer for transaction spans.
func WithTracer(t trace.Tracer) Option {
	return func(d *Document) {
		if t != nil {
			d.tracer = t
		}
	}
}

// WithConfig applies the engine section of cfg. The config must be valid;
// use FromConfig to validate first.
func WithConfig(cfg config.EngineConfig) Option {
	return func(d *Document) {
		if kind, err := cfg.BackendKind(); err == nil {
			d.backend = kind
		}
		if drift, err := cfg.DriftMode(); err == nil {
			d.drift = drift
		}
		if le, err := cfg.LineEndingMode(); err == nil {
			d.lineEnding = le
		}
		if n, err := cfg.NormalizationForm(); err == nil {
			d.normalization = n
		}
		if ttl, err := cfg.CacheTTL(); err == nil {
			d.cacheTTL = ttl
		}
		WithMaxUndoEntries(cfg.MaxUndoEntries)(d)
		WithMaxChanges(cfg.MaxChanges)(d)
		WithMaxPreContext(cfg.MaxPreContext)(d)
	}
}

func defaultDocument() *Document {
	return &Document{
		backend:        buffer.BackendRope,
		drift:          buffer.DriftInside,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		maxChanges:     DefaultMaxChanges,
		maxPreContext:  segment.DefaultMaxPreContext,
		cacheTTL:       DefaultSegmentCacheTTL,
		logger:         logging.Null(),
	}
}
