package span

import (
	"fmt"
	"math"
	"slices"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/segment"
	"github.com/mattn/go-runewidth"
)

// Span is one stored annotation. Order is the caller's priority token,
// typically a Lamport timestamp; ID is assigned by the Set.
type Span struct {
	ID uint64
	Interval
	Annotation
	Order uint64
}

func (sp Span) String() string {
	return fmt.Sprintf("%s%s=%v@%d", sp.Key, sp.Interval, sp.Value, sp.Order)
}

// Segment is a piece of text with one attribute set. Text and Width are
// only filled by Render.
type Segment struct {
	Interval
	Attrs Attributes
	Text  string
	Width int
}

// Set holds the spans of one document. A Set is not safe for concurrent
// use.
type Set struct {
	reg    *Registry
	tree   Tree[Span]
	nextID uint64
	clock  uint64
}

// NewSet creates an empty set. A nil registry selects DefaultRegistry.
func NewSet(reg *Registry) *Set {
	if reg == nil {
		reg = DefaultRegistry
	}
	return &Set{reg: reg}
}

// Registry returns the registry used to resolve attribute types.
func (s *Set) Registry() *Registry { return s.reg }

// Len returns the number of stored spans.
func (s *Set) Len() int { return s.tree.Len() }

// Clock returns the highest order token seen so far.
func (s *Set) Clock() uint64 { return s.clock }

// Annotate stores ann over iv, resolving overlaps with spans of the same
// attribute type by the type's Behavior. It reports whether the new span
// was stored; a Delete-type span loses against an overlapping span with
// an equal or higher order, and empty intervals are never stored.
func (s *Set) Annotate(iv Interval, ann Annotation, order uint64) (bool, error) {
	if iv.Start < 0 || iv.End < iv.Start {
		return false, fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}
	t, ok := s.reg.Lookup(ann.Key)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownAttribute, ann.Key)
	}
	raw, err := t.Encode(ann.Value)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalidValue, ann.Key, err)
	}
	if iv.IsEmpty() {
		return false, nil
	}
	s.clock = max(s.clock, order)

	switch t.Behavior {
	case Delete:
		rivals := s.sameKey(s.find(iv), ann.Key)
		for _, e := range rivals {
			if e.Value.Order >= order {
				return false, nil
			}
		}
		for _, e := range rivals {
			s.remove(e)
		}
	case Merge:
		iv = s.mergeInto(t, iv, raw)
	}
	s.insert(iv, ann, order)
	return true, nil
}

// AnnotateNext annotates with an order one past the current clock.
func (s *Set) AnnotateNext(iv Interval, ann Annotation) (bool, error) {
	return s.Annotate(iv, ann, s.clock+1)
}

// mergeInto removes same-valued spans touching iv and trims differently
// valued spans out of it. It returns the grown interval.
func (s *Set) mergeInto(t Type, iv Interval, raw string) Interval {
	query := Interval{Start: max(iv.Start-1, 0), End: iv.End + 1}
	union := iv
	for _, e := range s.sameKey(s.find(query), t.Name) {
		other, err := t.Encode(e.Value.Value)
		if err == nil && other == raw {
			if e.Interval.Touches(iv) {
				s.remove(e)
				union = union.Union(e.Interval)
			}
			continue
		}
		if !e.Interval.Intersects(iv) {
			continue
		}
		s.remove(e)
		sp := e.Value
		if e.Interval.Start < iv.Start {
			s.insert(Interval{Start: e.Interval.Start, End: iv.Start}, sp.Annotation, sp.Order)
		}
		if e.Interval.End > iv.End {
			s.insert(Interval{Start: iv.End, End: e.Interval.End}, sp.Annotation, sp.Order)
		}
	}
	return union
}

// find returns the entries intersecting q in span order.
func (s *Set) find(q Interval) []Entry[Span] {
	entries := s.tree.Find(q)
	slices.SortStableFunc(entries, func(a, b Entry[Span]) int {
		return compareSpans(a.Value, b.Value)
	})
	return entries
}

func (s *Set) sameKey(entries []Entry[Span], key string) []Entry[Span] {
	out := entries[:0]
	for _, e := range entries {
		if e.Value.Key == key {
			out = append(out, e)
		}
	}
	return out
}

func (s *Set) insert(iv Interval, ann Annotation, order uint64) {
	s.nextID++
	s.tree.Insert(iv, Span{ID: s.nextID, Interval: iv, Annotation: ann, Order: order})
}

func (s *Set) remove(e Entry[Span]) {
	id := e.Value.ID
	s.tree.Remove(e.Interval, func(sp Span) bool { return sp.ID == id })
}

// At returns the attributes active at off.
func (s *Set) At(off int) Attributes {
	return s.attrsAt(s.find(Interval{Start: off, End: off + 1}), off)
}

func (s *Set) attrsAt(entries []Entry[Span], off int) Attributes {
	attrs := Attributes{}
	for _, e := range entries {
		if !e.Interval.Contains(off) {
			continue
		}
		sp := e.Value
		if t, ok := s.reg.Lookup(sp.Key); ok && t.Behavior == AllowMultiple {
			list, _ := attrs[sp.Key].([]any)
			attrs[sp.Key] = append(list, sp.Value)
			continue
		}
		attrs[sp.Key] = sp.Value
	}
	return attrs
}

// In partitions iv into segments at every change of the active attribute
// set. Segments cover iv without gaps; stretches with no spans carry
// empty attributes.
func (s *Set) In(iv Interval) []Segment {
	if iv.IsEmpty() {
		return nil
	}
	entries := s.find(iv)
	cuts := []int{iv.Start, iv.End}
	for _, e := range entries {
		if e.Interval.Start > iv.Start && e.Interval.Start < iv.End {
			cuts = append(cuts, e.Interval.Start)
		}
		if e.Interval.End > iv.Start && e.Interval.End < iv.End {
			cuts = append(cuts, e.Interval.End)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var out []Segment
	for i := 0; i+1 < len(cuts); i++ {
		piece := Interval{Start: cuts[i], End: cuts[i+1]}
		attrs := s.attrsAt(entries, piece.Start)
		if n := len(out); n > 0 && out[n-1].Attrs.Equal(attrs) {
			out[n-1].End = piece.End
			continue
		}
		out = append(out, Segment{Interval: piece, Attrs: attrs})
	}
	return out
}

// Iter partitions the whole text [0, length).
func (s *Set) Iter(length int) []Segment {
	return s.In(Interval{Start: 0, End: length})
}

// Render partitions the whole of src and fills each segment's text and
// display width.
func (s *Set) Render(src segment.Source) []Segment {
	segs := s.Iter(src.Len())
	for i := range segs {
		segs[i].Text = src.Raw(segs[i].Start, segs[i].End)
		segs[i].Width = runewidth.StringWidth(segs[i].Text)
	}
	return segs
}

// Spans returns every stored span ordered by start, end and ID.
func (s *Set) Spans() []Span {
	entries := s.tree.All()
	out := make([]Span, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	slices.SortStableFunc(out, compareSpans)
	return out
}

func compareSpans(a, b Span) int {
	switch {
	case a.Start != b.Start:
		return a.Start - b.Start
	case a.End != b.End:
		return a.End - b.End
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// Update re-expresses the spans in the coordinates after the edit d.
// Only spans reaching the edit move; those that collapse to zero width
// are dropped. Edges where two spans of a Merge or Delete type now meet
// are then resolved again: equal Merge values coalesce, and otherwise the
// earlier span keeps the shared text.
func (s *Set) Update(d buffer.Delta, drift buffer.Drift) {
	if d.IsIdentity() || s.tree.Len() == 0 {
		return
	}
	for _, e := range s.tree.Find(Interval{Start: max(d.Start-1, 0), End: math.MaxInt}) {
		start, end := d.TransformRange(e.Interval.Start, e.Interval.End, drift)
		if start == e.Interval.Start && end == e.Interval.End {
			continue
		}
		if end <= start {
			s.remove(e)
			continue
		}
		id, next := e.Value.ID, Interval{Start: start, End: end}
		s.tree.UpdateInterval(e.Interval, func(sp Span) bool { return sp.ID == id }, next,
			func(sp Span) Span {
				sp.Interval = next
				return sp
			})
	}
	s.resolveAround(Interval{Start: max(d.Start-1, 0), End: d.Start + d.InsertLen + 1})
}

// resolveAround re-resolves the spans touching around. Spans wholly on
// one side of an edit keep their relative layout, so only these can have
// come to overlap or abut.
func (s *Set) resolveAround(around Interval) {
	entries := s.find(around)
	if len(entries) < 2 {
		return
	}
	spans := make([]Span, len(entries))
	for i, e := range entries {
		spans[i] = e.Value
		s.remove(e)
	}
	for _, sp := range s.resolveEdges(spans) {
		s.tree.Insert(sp.Interval, sp)
	}
}

func (s *Set) resolveEdges(spans []Span) []Span {
	byKey := make(map[string][]Span)
	var out []Span
	for _, sp := range spans {
		t, ok := s.reg.Lookup(sp.Key)
		if !ok || t.Behavior == AllowMultiple {
			out = append(out, sp)
			continue
		}
		byKey[sp.Key] = append(byKey[sp.Key], sp)
	}

	for key, group := range byKey {
		t, _ := s.reg.Lookup(key)
		var kept []Span
		for _, sp := range group {
			if len(kept) == 0 {
				kept = append(kept, sp)
				continue
			}
			last := &kept[len(kept)-1]
			if t.Behavior == Merge && sp.Start <= last.End && sameValue(t, last.Value, sp.Value) {
				last.End = max(last.End, sp.End)
				last.Order = max(last.Order, sp.Order)
				continue
			}
			if sp.Start < last.End {
				sp.Start = last.End
				if sp.End <= sp.Start {
					continue
				}
			}
			kept = append(kept, sp)
		}
		out = append(out, kept...)
	}
	return out
}

func sameValue(t Type, a, b any) bool {
	ra, errA := t.Encode(a)
	rb, errB := t.Encode(b)
	return errA == nil && errB == nil && ra == rb
}

// Clone returns an independent copy sharing the registry.
func (s *Set) Clone() *Set {
	return &Set{
		reg:    s.reg,
		tree:   s.tree.Clone(),
		nextID: s.nextID,
		clock:  s.clock,
	}
}
