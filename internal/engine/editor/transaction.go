package editor

// Transaction kinds.
const (
	KindInsertAtCursorHead = "insert_at_cursor_head"
	KindPaste              = "paste"
	KindInsertNewLine      = "insert_new_line"
	KindDeleteBackward     = "delete_backward"
	KindDeleteSelection    = "delete_selection"
	KindMoveCursorLeft     = "move_cursor_left"
	KindMoveCursorRight    = "move_cursor_right"
	KindMoveCursorHeadTo   = "move_cursor_head_to"
	KindSelectWord         = "select_word"
	KindUndo               = "undo"
	KindRedo               = "redo"
)

// Transaction is one atomic edit request.
type Transaction interface {
	Kind() string
}

// InsertAtCursorHead writes Value at the cursor.
type InsertAtCursorHead struct {
	Value string
}

// Paste writes Clipboard at the cursor after normalizing it.
type Paste struct {
	Clipboard string
}

// InsertNewLine writes the configured line ending at the cursor.
type InsertNewLine struct{}

// DeleteBackward removes the grapheme before the cursor, or the selection
// when it is not empty.
type DeleteBackward struct{}

// DeleteSelection removes the selected text.
type DeleteSelection struct{}

// MoveCursorLeft moves the cursor N graphemes back.
type MoveCursorLeft struct {
	N int
}

// MoveCursorRight moves the cursor N graphemes forward.
type MoveCursorRight struct {
	N int
}

// MoveCursorHeadTo places the cursor at Offset.
type MoveCursorHeadTo struct {
	Offset int
}

// SelectWord selects the word around the cursor.
type SelectWord struct{}

// Undo reverts the last edit.
type Undo struct{}

// Redo reapplies the last undone edit.
type Redo struct{}

func (InsertAtCursorHead) Kind() string { return KindInsertAtCursorHead }
func (Paste) Kind() string              { return KindPaste }
func (InsertNewLine) Kind() string      { return KindInsertNewLine }
func (DeleteBackward) Kind() string     { return KindDeleteBackward }
func (DeleteSelection) Kind() string    { return KindDeleteSelection }
func (MoveCursorLeft) Kind() string     { return KindMoveCursorLeft }
func (MoveCursorRight) Kind() string    { return KindMoveCursorRight }
func (MoveCursorHeadTo) Kind() string   { return KindMoveCursorHeadTo }
func (SelectWord) Kind() string         { return KindSelectWord }
func (Undo) Kind() string               { return KindUndo }
func (Redo) Kind() string               { return KindRedo }
