package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/bluebook/internal/config"
)

// execute runs the root command with args and stdin, returning stdout
// and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

const helloScript = `text: "Hello world"
steps:
  - op: move_cursor_head_to
    offset: 5
  - op: insert_at_cursor_head
    value: " there"
  - op: annotate
    start: 0
    end: 5
    key: bold
    raw: "true"
`

func TestSegmentCommand(t *testing.T) {
	out, _, err := execute(t, "a\U0001F600b", "segment", "--kind", "grapheme")
	require.NoError(t, err)
	assert.Equal(t, "1\n5\n6\n", out)

	out, _, err = execute(t, "a\U0001F600b", "segment", "-n", "1", "--show")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"a\"\n", out)

	_, _, err = execute(t, "abc", "segment", "--kind", "syllable")
	assert.Error(t, err)
}

func TestPositionCommand(t *testing.T) {
	text := "ab\n\U0001F600c"

	out, _, err := execute(t, text, "position", "--offset", "8")
	require.NoError(t, err)
	assert.Equal(t, "1:3\n", out)

	out, _, err = execute(t, text, "position", "--line", "1", "--col", "2")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	_, _, err = execute(t, text, "position")
	assert.Error(t, err)
	_, _, err = execute(t, text, "position", "--offset", "1", "--line", "0")
	assert.Error(t, err)
}

func TestApplyCommand(t *testing.T) {
	out, _, err := execute(t, helloScript, "apply")
	require.NoError(t, err)
	assert.Equal(t, "\"Hello there world\"\n"+
		"0-5\t5\t\"Hello\"\tbold=true\n"+
		"5-17\t12\t\" there world\"\n", out)

	out, _, err = execute(t, helloScript, "apply", "--verbose")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 move_cursor_head_to true Point(5)\n2 insert_at_cursor_head true Point(11)\n"))
}

func TestApplyCommandErrors(t *testing.T) {
	_, _, err := execute(t, "text: x\nsteps:\n  - op: frobnicate\n", "apply")
	assert.ErrorContains(t, err, "unknown op")

	_, _, err = execute(t, "text: x\ncolour: red\n", "apply")
	assert.Error(t, err)

	_, _, err = execute(t, "text: x\nsteps:\n  - op: select\n    anchor: 0\n    head: 9\n", "apply")
	assert.ErrorContains(t, err, "step 1 (select)")
}

func TestApplyGroupsAndCheckpoints(t *testing.T) {
	script := `text: ab
steps:
  - op: move_cursor_head_to
    offset: 2
  - op: checkpoint
  - op: group
    name: tail
    steps:
      - op: insert_at_cursor_head
        value: c
      - op: insert_new_line
      - op: insert_at_cursor_head
        value: d
  - op: undo
  - op: redo
`
	out, _, err := execute(t, script, "apply")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\"abc\\nd\"\n"), out)

	out, _, err = execute(t, script+"  - op: undo_to_checkpoint\n", "apply")
	require.NoError(t, err)
	assert.Equal(t, "\"ab\"\n0-2\t2\t\"ab\"\n", out)

	// A failing group step leaves the text as it was.
	_, _, err = execute(t, "text: ab\nsteps:\n  - op: group\n    steps:\n      - op: insert_at_cursor_head\n        value: x\n      - op: move_cursor_head_to\n        offset: 9\n", "apply")
	assert.ErrorContains(t, err, "step 1 (group): transaction 1")

	_, _, err = execute(t, "text: ab\nsteps:\n  - op: group\n    steps:\n      - op: annotate\n", "apply")
	assert.ErrorContains(t, err, "group step 1: unknown op")

	_, _, err = execute(t, "text: ab\nsteps:\n  - op: group\n", "apply")
	assert.ErrorContains(t, err, "group has no steps")

	_, _, err = execute(t, "text: ab\nsteps:\n  - op: undo_to_checkpoint\n", "apply")
	assert.ErrorContains(t, err, "no checkpoint recorded")
}

func TestApplyMultipleSelections(t *testing.T) {
	script := `text: one two
steps:
  - op: select
    anchor: 4
    head: 7
  - op: add_selection
    anchor: 0
    head: 0
  - op: insert_at_cursor_head
    value: ">"
  - op: collapse_selections
`
	out, _, err := execute(t, script, "apply", "-v")
	require.NoError(t, err)
	assert.Equal(t, "1 select true Selection(4->7)\n"+
		"2 add_selection true Point(0) Selection(4->7)\n"+
		"3 insert_at_cursor_head true Point(1) Selection(5->8)\n"+
		"4 collapse_selections true Point(1)\n"+
		"\">one two\"\n"+
		"0-8\t8\t\">one two\"\n", out)
}

func TestApplyWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bluebook.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nline_ending = \"crlf\"\nbackend = \"sequence\"\n"), 0o600))

	script := "text: ab\nsteps:\n  - op: move_cursor_right\n  - op: insert_new_line\n"
	out, _, err := execute(t, script, "apply", "--config", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\"a\\r\\nb\"\n"), out)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BLUEBOOK_ENGINE_BACKEND", "gap")
	_, _, err := execute(t, "abc", "segment")
	assert.ErrorIs(t, err, config.ErrValidationFailed)

	// Flags win over the environment.
	_, _, err = execute(t, "abc", "segment", "--backend", "string")
	assert.NoError(t, err)
}

func TestTraceFlag(t *testing.T) {
	_, errOut, err := execute(t, helloScript, "apply", "--trace")
	require.NoError(t, err)
	assert.Contains(t, errOut, "tx.insert_at_cursor_head")
	assert.Contains(t, errOut, "tx.annotate")
}
