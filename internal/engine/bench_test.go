package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/editor"
	"github.com/dshills/bluebook/internal/engine/span"
)

func BenchmarkInsert(b *testing.B) {
	for _, kind := range []buffer.BackendKind{buffer.BackendString, buffer.BackendRope, buffer.BackendSequence} {
		b.Run(kind.String(), func(b *testing.B) {
			d := New(WithBackend(kind), WithContent(strings.Repeat("lorem ipsum dolor\n", 2000)))
			_ = d.Select(d.Len()/2, d.Len()/2)
			ctx := context.Background()
			b.ResetTimer()
			for b.Loop() {
				_, _ = d.Apply(ctx, editor.InsertAtCursorHead{Value: "x"})
			}
		})
	}
}

func BenchmarkSegments(b *testing.B) {
	d := New(WithContent(strings.Repeat("lorem ipsum dolor\n", 2000)), WithSegmentCacheTTL(0))
	ctx := context.Background()
	for i := 0; i < d.Len(); i += 100 {
		_, _ = d.Annotate(ctx, span.Interval{Start: i, End: i + 50}, span.Bold(true))
	}
	b.ResetTimer()
	for b.Loop() {
		_ = d.Segments()
	}
}
