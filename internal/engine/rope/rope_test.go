package rope

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNewRope(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("expected length 0, got %d", r.Len())
	}
	if r.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", r.LineCount())
	}
	if !r.IsEmpty() {
		t.Error("new rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("expected empty string, got %q", r.String())
	}
}

func TestFromStringLarge(t *testing.T) {
	text := strings.Repeat("h\u00e9llo w\u00f6rld\n", 500)
	r := FromString(text)
	if r.String() != text {
		t.Fatal("round trip mismatch")
	}
	if r.Len() != len(text) {
		t.Errorf("Len = %d, want %d", r.Len(), len(text))
	}
	if r.LineCount() != 501 {
		t.Errorf("LineCount = %d, want 501", r.LineCount())
	}
	if r.Height() < 2 {
		t.Errorf("expected a multi-level tree, height %d", r.Height())
	}
}

func TestChunksSplitOnRuneBoundaries(t *testing.T) {
	text := strings.Repeat("\u65e5\u672c\u8a9e", 200)
	it := FromString(text).Chunks()
	total := 0
	for it.Next() {
		c := it.Chunk()
		if len(c) > MaxChunkSize {
			t.Errorf("chunk of %d bytes exceeds max", len(c))
		}
		for _, r := range c {
			if r == '\uFFFD' {
				t.Fatalf("chunk at %d cut a rune", it.Offset())
			}
		}
		total += len(c)
	}
	if total != len(text) {
		t.Errorf("chunks cover %d bytes, want %d", total, len(text))
	}
}

func TestInsertDelete(t *testing.T) {
	r := FromString("Hello world")
	r2 := r.Insert(5, " there")
	if got := r2.String(); got != "Hello there world" {
		t.Errorf("Insert: got %q", got)
	}
	if r.String() != "Hello world" {
		t.Error("original rope was modified")
	}
	r3 := r2.Delete(5, 11)
	if got := r3.String(); got != "Hello world" {
		t.Errorf("Delete: got %q", got)
	}
	r4 := r3.Replace(0, 5, "Goodbye")
	if got := r4.String(); got != "Goodbye world" {
		t.Errorf("Replace: got %q", got)
	}
}

func TestSplitConcat(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100)
	r := FromString(text)
	for _, off := range []int{0, 1, 63, 64, 128, 500, 999, 1000} {
		l, rt := r.Split(off)
		if l.String() != text[:off] || rt.String() != text[off:] {
			t.Fatalf("Split(%d) mismatch", off)
		}
		if got := l.Concat(rt).String(); got != text {
			t.Fatalf("Concat after Split(%d) mismatch", off)
		}
	}
}

func TestLineQueries(t *testing.T) {
	text := "Technically\na word:\n \u09ec\u85cfA\u030a\n\u110b\u1161"
	r := FromString(text)

	starts := []int{0, 12, 20, 31}
	for line, want := range starts {
		if got := r.LineStart(line); got != want {
			t.Errorf("LineStart(%d) = %d, want %d", line, got, want)
		}
	}
	if got := r.LineStart(10); got != len(text) {
		t.Errorf("LineStart past end = %d, want %d", got, len(text))
	}

	tests := []struct{ off, line int }{
		{0, 0}, {11, 0}, {12, 1}, {19, 1}, {20, 2}, {31, 3}, {len(text), 3},
	}
	for _, tt := range tests {
		if got := r.LineOfOffset(tt.off); got != tt.line {
			t.Errorf("LineOfOffset(%d) = %d, want %d", tt.off, got, tt.line)
		}
	}
}

func TestUTF16Before(t *testing.T) {
	r := FromString("a\U0001F600b\u00d7")
	tests := []struct{ off, want int }{
		{0, 0}, {1, 1}, {5, 3}, {6, 4}, {8, 5},
	}
	for _, tt := range tests {
		if got := r.UTF16Before(tt.off); got != tt.want {
			t.Errorf("UTF16Before(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestByteAt(t *testing.T) {
	text := strings.Repeat("0123456789", 50)
	r := FromString(text)
	for _, off := range []int{0, 9, 127, 128, 499} {
		b, ok := r.ByteAt(off)
		if !ok || b != text[off] {
			t.Errorf("ByteAt(%d) = %q, %v", off, b, ok)
		}
	}
	if _, ok := r.ByteAt(500); ok {
		t.Error("ByteAt past end should fail")
	}
}

func TestRopeMatchesStringModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		model := rapid.StringMatching(`[a-z\n]{0,300}`).Draw(rt, "initial")
		r := FromString(model)

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			start := rapid.IntRange(0, len(model)).Draw(rt, "start")
			end := rapid.IntRange(start, len(model)).Draw(rt, "end")
			text := rapid.StringMatching(`[a-z\n]{0,150}`).Draw(rt, "text")

			model = model[:start] + text + model[end:]
			r = r.Replace(start, end, text)

			if r.String() != model {
				rt.Fatalf("step %d: rope %q != model %q", i, r.String(), model)
			}
			if r.LineCount() != strings.Count(model, "\n")+1 {
				rt.Fatalf("step %d: line count mismatch", i)
			}
		}

		off := rapid.IntRange(0, len(model)).Draw(rt, "off")
		if got, want := r.LineOfOffset(off), strings.Count(model[:off], "\n"); got != want {
			rt.Fatalf("LineOfOffset(%d) = %d, want %d", off, got, want)
		}
	})
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromString(strings.Repeat("lorem ipsum dolor sit amet\n", 4000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r = r.Insert(r.Len()/2, "x")
	}
}

func BenchmarkLineStart(b *testing.B) {
	r := FromString(strings.Repeat("lorem ipsum dolor sit amet\n", 4000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.LineStart(i % 4000)
	}
}
