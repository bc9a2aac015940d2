// Package cursor provides navigation cursors and selections over a text
// buffer.
//
// A Cursor walks one kind of boundary:
//
//   - Codepoint: UTF-8 scalar values
//   - Grapheme: user-perceived characters
//   - Word: starts of words and punctuation runs
//   - Sentence: the first character after a sentence terminal
//   - Paragraph: runs of blank lines
//   - Line: line starts
//   - Block: blank-line separated blocks
//
// Cursors remember the buffer version they were created at. Once the
// buffer is mutated every Next and Prev call fails with ErrStale; create
// a new cursor instead.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection is a point. Head < Anchor is a
// backward selection. SelectionSet keeps several selections sorted, merges
// overlapping ones and tracks which one is primary.
//
// Basic usage:
//
//	c, err := cursor.New(cursor.Word, buf, 0)
//	if err != nil {
//		return err
//	}
//	for {
//		off, ok, err := c.Next()
//		if err != nil || !ok {
//			break
//		}
//		fmt.Println("word boundary at", off)
//	}
package cursor
