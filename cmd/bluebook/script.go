package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/bluebook/internal/engine/editor"
	"github.com/dshills/bluebook/internal/engine/span"
)

// Script is an edit script: starting text and a list of steps.
//
//	text: "Hello world"
//	steps:
//	  - op: move_cursor_head_to
//	    offset: 5
//	  - op: insert_at_cursor_head
//	    value: " there"
//	  - op: annotate
//	    start: 0
//	    end: 5
//	    key: bold
//	    raw: "true"
//	  - op: group
//	    name: sign off
//	    steps:
//	      - op: insert_new_line
//	      - op: insert_at_cursor_head
//	        value: "-- me"
type Script struct {
	Text  string `yaml:"text"`
	Steps []Step `yaml:"steps"`
}

// Step is one script entry. Op is a transaction kind or one of the
// script ops below; the other fields are read as the op needs them.
type Step struct {
	Op     string `yaml:"op"`
	Value  string `yaml:"value"`
	N      int    `yaml:"n"`
	Offset int    `yaml:"offset"`

	// select, add_selection
	Anchor int `yaml:"anchor"`
	Head   int `yaml:"head"`

	// group
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`

	// annotate
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Key   string `yaml:"key"`
	Raw   string `yaml:"raw"`
}

// Script step ops that are not transactions.
const (
	opSelect             = "select"
	opAnnotate           = "annotate"
	opAddSelection       = "add_selection"
	opCollapseSelections = "collapse_selections"
	opGroup              = "group"
	opCheckpoint         = "checkpoint"
	opUndoToCheckpoint   = "undo_to_checkpoint"
)

var (
	errUnknownOp  = errors.New("unknown op")
	errEmptyGroup = errors.New("group has no steps")
	errNested     = errors.New("steps are only allowed in a group")
)

// ParseScript decodes a YAML script, rejecting unknown fields.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	if s.Op != opGroup && len(s.Steps) > 0 {
		return fmt.Errorf("%w: %s", errNested, s.Op)
	}
	switch s.Op {
	case opSelect, opAnnotate, opAddSelection, opCollapseSelections, opCheckpoint, opUndoToCheckpoint:
		return nil
	case opGroup:
		if len(s.Steps) == 0 {
			return errEmptyGroup
		}
		_, err := s.Transactions()
		return err
	}
	_, err := s.Transaction()
	return err
}

// Transactions returns the transactions of a group's steps. Only
// transaction ops may appear in a group.
func (s Step) Transactions() ([]editor.Transaction, error) {
	txs := make([]editor.Transaction, len(s.Steps))
	for i, inner := range s.Steps {
		if len(inner.Steps) > 0 {
			return nil, fmt.Errorf("group step %d: %w: %s", i+1, errNested, inner.Op)
		}
		tx, err := inner.Transaction()
		if err != nil {
			return nil, fmt.Errorf("group step %d: %w", i+1, err)
		}
		txs[i] = tx
	}
	return txs, nil
}

// Transaction returns the editor transaction for a transaction op.
func (s Step) Transaction() (editor.Transaction, error) {
	switch s.Op {
	case editor.KindInsertAtCursorHead:
		return editor.InsertAtCursorHead{Value: s.Value}, nil
	case editor.KindPaste:
		return editor.Paste{Clipboard: s.Value}, nil
	case editor.KindInsertNewLine:
		return editor.InsertNewLine{}, nil
	case editor.KindDeleteBackward:
		return editor.DeleteBackward{}, nil
	case editor.KindDeleteSelection:
		return editor.DeleteSelection{}, nil
	case editor.KindMoveCursorLeft:
		return editor.MoveCursorLeft{N: s.count()}, nil
	case editor.KindMoveCursorRight:
		return editor.MoveCursorRight{N: s.count()}, nil
	case editor.KindMoveCursorHeadTo:
		return editor.MoveCursorHeadTo{Offset: s.Offset}, nil
	case editor.KindSelectWord:
		return editor.SelectWord{}, nil
	case editor.KindUndo:
		return editor.Undo{}, nil
	case editor.KindRedo:
		return editor.Redo{}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownOp, s.Op)
}

// count defaults an omitted move count to one step.
func (s Step) count() int {
	if s.N == 0 {
		return 1
	}
	return s.N
}

// Annotation decodes the step's annotation through reg.
func (s Step) Annotation(reg *span.Registry) (span.Interval, span.Annotation, error) {
	iv, err := span.NewInterval(s.Start, s.End)
	if err != nil {
		return span.Interval{}, span.Annotation{}, err
	}
	ann, err := reg.Decode(s.Key, s.Raw)
	if err != nil {
		return span.Interval{}, span.Annotation{}, err
	}
	return iv, ann, nil
}
