package span

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{BoldKey, CommentKey, ItalicKey, LinkKey}, r.Names())

	underline := boolType("underline")
	require.NoError(t, r.Register(underline))
	assert.ErrorIs(t, r.Register(underline), ErrDuplicateAttribute)
	assert.Error(t, r.Register(Type{Name: "broken"}))

	s := NewSet(r)
	ok, err := s.Annotate(Interval{0, 4}, Annotation{Key: "underline", Value: true}, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistryCodec(t *testing.T) {
	r := NewRegistry()

	raw, err := r.Encode(CommentBy("ana", `says "hi"`))
	require.NoError(t, err)
	ann, err := r.Decode(CommentKey, raw)
	require.NoError(t, err)
	assert.Equal(t, Comment{Author: "ana", Text: `says "hi"`}, ann.Value)

	ann, err = r.Decode(LinkKey, `{"url":"https://example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, Link{URL: "https://example.com"}, ann.Value)

	_, err = r.Decode(LinkKey, `{"href":1}`)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = r.Decode(BoldKey, `"true"`)
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = r.Decode("strike", `true`)
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestSetMarshalJSON(t *testing.T) {
	s := NewSet(nil)
	annotate(t, s, 0, 5, Bold(true), 1)
	annotate(t, s, 2, 4, LinkTo("u"), 3)

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"start":0,"end":5,"key":"bold","order":1,"value":true},
		{"start":2,"end":4,"key":"link","order":3,"value":{"url":"u"}}
	]`, string(data))

	decoded, err := Decode(nil, data)
	require.NoError(t, err)
	assert.Equal(t, view(s), view(decoded))
	assert.Equal(t, uint64(3), decoded.Clock())

	_, err = Decode(nil, []byte(`{"start":1}`))
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = Decode(nil, []byte(`[{"start":4,"end":1,"key":"bold","value":true}]`))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDecodeResolvesOverlaps(t *testing.T) {
	decoded, err := Decode(nil, []byte(`[
		{"start":0,"end":6,"key":"link","order":5,"value":{"url":"new"}},
		{"start":2,"end":8,"key":"link","order":2,"value":{"url":"old"}},
		{"start":0,"end":4,"key":"bold","order":1,"value":true},
		{"start":3,"end":9,"key":"bold","order":3,"value":true}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []spanView{
		{Interval{0, 6}, Link{URL: "new"}},
		{Interval{0, 9}, true},
	}, view(decoded))
	assert.Equal(t, uint64(5), decoded.Clock())

	_, err = Decode(nil, []byte(`[{"start":0,"end":2,"key":"strike","value":true}]`))
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestAttributes(t *testing.T) {
	a := Attributes{BoldKey: true, ItalicKey: true}
	b := Attributes{BoldKey: false, LinkKey: Link{URL: "x"}}

	assert.Equal(t, Attributes{BoldKey: false, ItalicKey: true, LinkKey: Link{URL: "x"}}, a.Add(b))
	assert.Equal(t, Attributes{ItalicKey: true}, a.Sub(b))
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(b))
	assert.Equal(t, Attributes{BoldKey: true, ItalicKey: true}, a, "Add and Sub must not modify the receiver")
}

func ExampleSet_In() {
	s := NewSet(nil)
	s.Annotate(Interval{2, 6}, Bold(true), 1)
	for _, seg := range s.In(Interval{0, 8}) {
		fmt.Println(seg.Interval, seg.Attrs)
	}
	// Output:
	// [0,2) map[]
	// [2,6) map[bold:true]
	// [6,8) map[]
}
