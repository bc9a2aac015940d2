package span

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSON encodes the spans as a JSON array of
// {"start","end","key","value","order"} objects in span order.
func (s *Set) MarshalJSON() ([]byte, error) {
	out := []byte("[]")
	for _, sp := range s.Spans() {
		value, err := s.reg.Encode(sp.Annotation)
		if err != nil {
			return nil, err
		}
		obj := []byte("{}")
		for _, field := range []struct {
			path string
			v    any
		}{
			{"start", sp.Start},
			{"end", sp.End},
			{"key", sp.Key},
			{"order", sp.Order},
		} {
			if obj, err = sjson.SetBytes(obj, field.path, field.v); err != nil {
				return nil, err
			}
		}
		if obj, err = sjson.SetRawBytes(obj, "value", []byte(value)); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "-1", obj); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decode rebuilds a set from the output of MarshalJSON. Spans are
// replayed through Annotate in order of their order tokens, so overlapping
// input is resolved exactly as live annotation would resolve it.
func Decode(reg *Registry, data []byte) (*Set, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: spans are not valid JSON", ErrInvalidValue)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: spans must be a JSON array", ErrInvalidValue)
	}

	s := NewSet(reg)
	var (
		pending []Span
		err     error
	)
	root.ForEach(func(_, item gjson.Result) bool {
		iv, ivErr := NewInterval(int(item.Get("start").Int()), int(item.Get("end").Int()))
		if ivErr != nil || iv.Start < 0 {
			err = fmt.Errorf("%w: bad span interval in %s", ErrInvalidInterval, item.Raw)
			return false
		}
		ann, decErr := s.reg.Decode(item.Get("key").String(), item.Get("value").Raw)
		if decErr != nil {
			err = decErr
			return false
		}
		pending = append(pending, Span{Interval: iv, Annotation: ann, Order: item.Get("order").Uint()})
		return true
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(pending, func(a, b Span) int {
		return cmp.Compare(a.Order, b.Order)
	})
	for _, sp := range pending {
		if _, err := s.Annotate(sp.Interval, sp.Annotation, sp.Order); err != nil {
			return nil, err
		}
	}
	return s, nil
}
