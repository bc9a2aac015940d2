package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dshills/bluebook/internal/config"
	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/cursor"
	"github.com/dshills/bluebook/internal/engine/editor"
	"github.com/dshills/bluebook/internal/engine/history"
	"github.com/dshills/bluebook/internal/engine/segment"
	"github.com/dshills/bluebook/internal/engine/span"
	"github.com/dshills/bluebook/internal/engine/tracking"
	"github.com/dshills/bluebook/internal/logging"
	"github.com/dshills/bluebook/internal/tracing"
)

// Re-export commonly used types for convenience.
type (
	Position    = buffer.Position
	Selection   = cursor.Selection
	Transaction = editor.Transaction
	Interval    = span.Interval
	Annotation  = span.Annotation
	Attributes  = span.Attributes
	Segment     = span.Segment
	Change      = tracking.Change
	SnapshotID  = tracking.SnapshotID
	DiffResult  = tracking.DiffResult
	Checkpoint  = history.Checkpoint
)

// Document is the thread-safe facade over one rich-text document.
type Document struct {
	mu sync.RWMutex

	id  string
	buf *buffer.Buffer
	ed  *editor.Editor

	// epoch counts state changes that may not bump the buffer version,
	// such as annotations and undone annotations.
	epoch    uint64
	segments *cache.Cache

	logger *logging.Logger
	tracer trace.Tracer

	// Configuration
	backend        buffer.BackendKind
	drift          buffer.Drift
	lineEnding     buffer.LineEnding
	normalization  editor.Normalization
	maxUndoEntries int
	maxChanges     int
	maxPreContext  int
	cacheTTL       time.Duration
	registry       *span.Registry

	initContent string
}

// New creates a document.
func New(opts ...Option) *Document {
	d := defaultDocument()
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = noop.NewTracerProvider().Tracer("bluebook")
	}

	d.id = uuid.NewString()
	d.logger = d.logger.WithComponent("engine").WithField("doc", d.id[:8])
	d.buf = buffer.New(d.backend, d.initContent,
		buffer.WithSegmenter(segment.Segmenter{MaxPreContext: d.maxPreContext}))
	d.ed = editor.New(d.buf, span.NewSet(d.registry),
		editor.WithDrift(d.drift),
		editor.WithLineEnding(d.lineEnding),
		editor.WithNormalization(d.normalization),
		editor.WithHistory(history.New(d.maxUndoEntries)),
		editor.WithTracker(tracking.NewTracker(tracking.WithMaxChanges(d.maxChanges))),
	)
	d.initContent = ""

	ttl := d.cacheTTL
	if ttl <= 0 {
		d.segments = cache.New(cache.NoExpiration, 0)
	} else {
		d.segments = cache.New(ttl, 2*ttl)
	}
	return d
}

// FromConfig validates cfg and creates a document from its engine
// section. Later options override the config.
func FromConfig(cfg config.Config, opts ...Option) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg.Engine)}, opts...)...), nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() string {
	return d.id
}

// Apply consumes one edit transaction. It reports whether the document
// changed; structural failures come back as *editor.Error.
func (d *Document) Apply(ctx context.Context, tx Transaction) (bool, error) {
	if tx == nil {
		return false, ErrNilTransaction
	}
	_, sp := d.tracer.Start(ctx, tracing.SpanPrefixTx+tx.Kind(),
		trace.WithAttributes(attribute.String(tracing.AttrTxKind, tx.Kind())))
	defer sp.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	ok, err := d.ed.Apply(tx)
	d.finish(sp, tx.Kind(), ok, err)
	return ok, err
}

// Annotate applies an annotation over iv as an undoable edit.
func (d *Document) Annotate(ctx context.Context, iv Interval, ann Annotation) (bool, error) {
	_, sp := d.tracer.Start(ctx, tracing.SpanPrefixTx+"annotate",
		trace.WithAttributes(
			attribute.String(tracing.AttrTxKind, "annotate"),
			attribute.String(tracing.AttrAnnotateKey, ann.Key),
		))
	defer sp.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	ok, err := d.ed.Annotate(iv, ann)
	d.finish(sp, "annotate", ok, err)
	return ok, err
}

// ApplyGroup applies txs in order as one undo step. If any transaction
// fails, the ones before it are undone and the error names the failing
// transaction by index. It reports whether the document changed.
func (d *Document) ApplyGroup(ctx context.Context, name string, txs ...Transaction) (bool, error) {
	_, sp := d.tracer.Start(ctx, tracing.SpanPrefixTx+"group",
		trace.WithAttributes(
			attribute.String(tracing.AttrTxKind, "group"),
			attribute.String(tracing.AttrGroupName, name),
			attribute.Int(tracing.AttrGroupSize, len(txs)),
		))
	defer sp.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	var changed bool
	err := d.ed.Group(name, func() error {
		for i, tx := range txs {
			if tx == nil {
				return fmt.Errorf("transaction %d: %w", i, ErrNilTransaction)
			}
			ok, err := d.ed.Apply(tx)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			changed = changed || ok
		}
		return nil
	})
	if err != nil {
		changed = false
	}
	d.finish(sp, "group", changed, err)
	return changed, err
}

// Checkpoint marks the current undo position.
func (d *Document) Checkpoint() Checkpoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Checkpoint()
}

// UndoToCheckpoint undoes every edit made after cp.
func (d *Document) UndoToCheckpoint(ctx context.Context, cp Checkpoint) error {
	_, sp := d.tracer.Start(ctx, tracing.SpanPrefixTx+"undo_to_checkpoint",
		trace.WithAttributes(attribute.String(tracing.AttrTxKind, "undo_to_checkpoint")))
	defer sp.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	depth := d.ed.History().UndoCount()
	err := d.ed.UndoToCheckpoint(cp)
	d.finish(sp, "undo_to_checkpoint", d.ed.History().UndoCount() != depth, err)
	return err
}

// finish records the outcome of a mutation. Must hold the write lock.
func (d *Document) finish(sp trace.Span, kind string, ok bool, err error) {
	if ok {
		d.epoch++
	}
	sel := d.ed.Selection()
	sp.SetAttributes(
		attribute.Int64(tracing.AttrDocVersion, int64(d.buf.Version())),
		attribute.Int(tracing.AttrDocLength, d.buf.Len()),
		attribute.Int(tracing.AttrSpanCount, d.ed.Spans().Len()),
		attribute.Int(tracing.AttrSelFrom, sel.From()),
		attribute.Int(tracing.AttrSelTo, sel.To()),
	)
	tracing.RecordOutcome(sp, ok, err)

	log := d.logger.WithField("tx", kind)
	switch {
	case err != nil:
		log.Warn("transaction failed: %v", err)
	case ok:
		log.Debug("applied, version %d, selection %s", d.buf.Version(), sel)
	}
}

// Select sets the selection. Both ends must be grapheme boundaries.
func (d *Document) Select(anchor, head int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ed.Select(anchor, head)
}

// AddSelection adds a selection and makes it primary. Selections that
// overlap merge. Edits apply at the primary selection; the others move
// with the text.
func (d *Document) AddSelection(anchor, head int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ed.AddSelection(anchor, head)
}

// CollapseSelections drops every selection but the primary. It reports
// whether any were dropped.
func (d *Document) CollapseSelections() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ed.CollapseSelections()
}

// Read Operations

// Text returns the full text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.String()
}

// Len returns the text length in bytes.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.Len()
}

// Version returns the buffer version.
func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.Version()
}

// Slice returns the text in [start, end).
func (d *Document) Slice(start, end int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.Slice(start, end)
}

// Selection returns the current selection.
func (d *Document) Selection() Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Selection()
}

// Selections returns every selection in position order.
func (d *Document) Selections() []Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Selections()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.LineCount()
}

// Position converts a byte offset to a line and UTF-16 column.
func (d *Document) Position(off int) (Position, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.OffsetToPosition(off)
}

// Offset converts a line and UTF-16 column to a byte offset.
func (d *Document) Offset(pos Position) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf.OffsetOfPosition(pos)
}

// Span Operations

// SpansAt returns the attributes in effect at off.
func (d *Document) SpansAt(off int) Attributes {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Spans().At(off)
}

// SpansIn partitions iv into segments of constant attributes.
func (d *Document) SpansIn(iv Interval) []Segment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Spans().In(iv)
}

// Spans returns every stored span.
func (d *Document) Spans() []span.Span {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Spans().Spans()
}

// Segments partitions the whole text into segments carrying their text,
// display width and attributes. Results are cached until the document
// changes.
func (d *Document) Segments() []Segment {
	d.mu.RLock()
	defer d.mu.RUnlock()

	key := fmt.Sprintf("%d:%d", d.buf.Version(), d.epoch)
	if v, ok := d.segments.Get(key); ok {
		return slices.Clone(v.([]Segment))
	}
	segs := d.ed.Spans().Render(d.buf)
	d.segments.SetDefault(key, segs)
	return slices.Clone(segs)
}

// MarshalSpans encodes the span set as JSON.
func (d *Document) MarshalSpans() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Spans().MarshalJSON()
}

// LoadSpans replaces the span set with one decoded from JSON. Undo
// history is cleared since its snapshots refer to the old set.
func (d *Document) LoadSpans(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	set, err := span.Decode(d.ed.Spans().Registry(), data)
	if err != nil {
		return err
	}
	for _, sp := range set.Spans() {
		if sp.End > d.buf.Len() {
			return fmt.Errorf("%w: span %s past end of text", buffer.ErrInvalidRange, sp.Interval)
		}
	}
	d.ed.RestoreSpans(set)
	d.ed.History().Clear()
	d.epoch++
	return nil
}

// Cursor Operations

// Boundaries returns every boundary of the given granularity after from,
// in order, stopping after limit results when limit is positive.
func (d *Document) Boundaries(kind cursor.Kind, from, limit int) ([]int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, err := cursor.New(kind, d.buf, from)
	if err != nil {
		return nil, err
	}
	var out []int
	for limit <= 0 || len(out) < limit {
		off, ok, err := c.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, off)
	}
	return out, nil
}

// Cursor returns a cursor of the given kind at off. Each step takes the
// document's read lock; after any edit the cursor reports cursor.ErrStale.
func (d *Document) Cursor(kind cursor.Kind, off int) (cursor.Cursor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, err := cursor.New(kind, d.buf, off)
	if err != nil {
		return nil, err
	}
	return &lockedCursor{mu: &d.mu, c: c}, nil
}

type lockedCursor struct {
	mu *sync.RWMutex
	c  cursor.Cursor
}

func (lc *lockedCursor) Offset() int       { return lc.c.Offset() }
func (lc *lockedCursor) Kind() cursor.Kind { return lc.c.Kind() }

func (lc *lockedCursor) Next() (int, bool, error) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return lc.c.Next()
}

func (lc *lockedCursor) Prev() (int, bool, error) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return lc.c.Prev()
}

// History

// CanUndo reports whether an edit can be undone.
func (d *Document) CanUndo() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.History().CanUndo()
}

// CanRedo reports whether an undone edit can be reapplied.
func (d *Document) CanRedo() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.History().CanRedo()
}

// UndoHistory describes the undo stack, oldest first.
func (d *Document) UndoHistory() []history.OperationInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.History().UndoInfo()
}

// Change Tracking

// ChangesSince returns the edits that produced versions after version.
func (d *Document) ChangesSince(version uint64) []Change {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Tracker().ChangesSince(version)
}

// Snapshot stores the current text under name.
func (d *Document) Snapshot(name string) SnapshotID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ed.Tracker().CreateSnapshot(name, d.buf.String(), d.buf.Version())
}

// DiffSinceSnapshot returns the line diff from a snapshot to the current
// text.
func (d *Document) DiffSinceSnapshot(id SnapshotID) (DiffResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	res, err := d.ed.Tracker().DiffSinceSnapshot(id, d.buf.String())
	if err != nil {
		return DiffResult{}, fmt.Errorf("%w: %d", ErrSnapshotNotFound, id)
	}
	return res, nil
}
