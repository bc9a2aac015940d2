package span

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Registry errors.
var (
	ErrUnknownAttribute   = errors.New("unknown attribute type")
	ErrDuplicateAttribute = errors.New("attribute type already registered")
	ErrInvalidValue       = errors.New("invalid attribute value")
)

// Built-in attribute type names.
const (
	BoldKey    = "bold"
	ItalicKey  = "italic"
	LinkKey    = "link"
	CommentKey = "comment"
)

// Type describes one attribute kind. Encode renders a value as JSON and
// rejects values of the wrong Go type; Decode parses that JSON back.
type Type struct {
	Name     string
	Behavior Behavior
	Encode   func(v any) (string, error)
	Decode   func(raw string) (any, error)
}

// Registry maps attribute names to their types. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry returns a registry holding the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, t := range builtinTypes() {
		r.types[t.Name] = t
	}
	return r
}

// DefaultRegistry is used when a Set is created without one.
var DefaultRegistry = NewRegistry()

// Register adds a type. Names must be unique.
func (r *Registry) Register(t Type) error {
	if t.Name == "" || t.Encode == nil || t.Decode == nil {
		return fmt.Errorf("%w: type %q is incomplete", ErrInvalidValue, t.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAttribute, t.Name)
	}
	r.types[t.Name] = t
	return nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Encode renders the annotation's value with its type's encoder.
func (r *Registry) Encode(a Annotation) (string, error) {
	t, ok := r.Lookup(a.Key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAttribute, a.Key)
	}
	raw, err := t.Encode(a.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidValue, a.Key, err)
	}
	return raw, nil
}

// Decode parses a raw JSON value of the named type.
func (r *Registry) Decode(key, raw string) (Annotation, error) {
	t, ok := r.Lookup(key)
	if !ok {
		return Annotation{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, key)
	}
	v, err := t.Decode(raw)
	if err != nil {
		return Annotation{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return Annotation{Key: key, Value: v}, nil
}

// Annotation is one typed attribute value.
type Annotation struct {
	Key   string
	Value any
}

// Link is the value of a link attribute. An empty URL removes links.
type Link struct {
	URL string
}

// Comment is the value of a comment attribute.
type Comment struct {
	Author string
	Text   string
}

// Bold returns a bold annotation.
func Bold(on bool) Annotation { return Annotation{Key: BoldKey, Value: on} }

// Italic returns an italic annotation.
func Italic(on bool) Annotation { return Annotation{Key: ItalicKey, Value: on} }

// NotBold clears bold over its range.
func NotBold() Annotation { return Bold(false) }

// NotItalic clears italic over its range.
func NotItalic() Annotation { return Italic(false) }

// LinkTo returns a link annotation.
func LinkTo(url string) Annotation { return Annotation{Key: LinkKey, Value: Link{URL: url}} }

// NotLink replaces links over its range with the empty link.
func NotLink() Annotation { return LinkTo("") }

// CommentBy returns a comment annotation.
func CommentBy(author, text string) Annotation {
	return Annotation{Key: CommentKey, Value: Comment{Author: author, Text: text}}
}

func builtinTypes() []Type {
	return []Type{
		boolType(BoldKey),
		boolType(ItalicKey),
		{
			Name:     LinkKey,
			Behavior: Delete,
			Encode: func(v any) (string, error) {
				l, ok := v.(Link)
				if !ok {
					return "", fmt.Errorf("want Link, got %T", v)
				}
				return sjson.Set("{}", "url", l.URL)
			},
			Decode: func(raw string) (any, error) {
				url := gjson.Get(raw, "url")
				if !gjson.Valid(raw) || url.Type != gjson.String {
					return nil, fmt.Errorf("link needs a url string: %s", raw)
				}
				return Link{URL: url.String()}, nil
			},
		},
		{
			Name:     CommentKey,
			Behavior: AllowMultiple,
			Encode: func(v any) (string, error) {
				c, ok := v.(Comment)
				if !ok {
					return "", fmt.Errorf("want Comment, got %T", v)
				}
				raw, err := sjson.Set("{}", "author", c.Author)
				if err != nil {
					return "", err
				}
				return sjson.Set(raw, "text", c.Text)
			},
			Decode: func(raw string) (any, error) {
				if !gjson.Valid(raw) {
					return nil, fmt.Errorf("comment is not JSON: %s", raw)
				}
				res := gjson.GetMany(raw, "author", "text")
				return Comment{Author: res[0].String(), Text: res[1].String()}, nil
			},
		},
	}
}

func boolType(name string) Type {
	return Type{
		Name:     name,
		Behavior: Merge,
		Encode: func(v any) (string, error) {
			b, ok := v.(bool)
			if !ok {
				return "", fmt.Errorf("want bool, got %T", v)
			}
			return strconv.FormatBool(b), nil
		},
		Decode: func(raw string) (any, error) {
			res := gjson.Parse(raw)
			if res.Type != gjson.True && res.Type != gjson.False {
				return nil, fmt.Errorf("want a JSON boolean, got %s", raw)
			}
			return res.Bool(), nil
		},
	}
}
