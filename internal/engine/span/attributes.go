package span

import (
	"fmt"
	"maps"
	"reflect"
)

// Behavior resolves overlaps between spans of the same attribute type.
type Behavior uint8

const (
	// Merge coalesces overlapping spans with equal values into their union.
	Merge Behavior = 0
	// Delete keeps only the overlapping span with the higher order token.
	Delete Behavior = 1
	// AllowMultiple keeps every span even when they overlap.
	AllowMultiple Behavior = 2
)

// String returns the behavior name.
func (b Behavior) String() string {
	switch b {
	case Merge:
		return "merge"
	case Delete:
		return "delete"
	case AllowMultiple:
		return "allow-multiple"
	default:
		return fmt.Sprintf("Behavior(%d)", b)
	}
}

// Attributes maps attribute names to values. For AllowMultiple types the
// value is a []any holding every active value in span order.
type Attributes map[string]any

// Add returns a copy of a with every key of other set, overwriting
// existing keys.
func (a Attributes) Add(other Attributes) Attributes {
	out := a.Clone()
	maps.Copy(out, other)
	return out
}

// Sub returns a copy of a without the keys present in other.
func (a Attributes) Sub(other Attributes) Attributes {
	out := a.Clone()
	for k := range other {
		delete(out, k)
	}
	return out
}

// Clone returns a shallow copy. A nil map clones to an empty one.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	maps.Copy(out, a)
	return out
}

// Equal reports whether both maps hold the same keys and values.
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		ov, ok := other[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}
