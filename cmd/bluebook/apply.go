package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/bluebook/internal/engine"
	"github.com/dshills/bluebook/internal/engine/span"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "apply [script.yaml]",
		Short: "Run an edit script and print the resulting document",
		Long: `Run a YAML edit script against its starting text, then print the final
text followed by its attribute segments. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			script, err := ParseScript([]byte(data))
			if err != nil {
				return err
			}
			doc, err := a.newDocument(script.Text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := &runner{doc: doc}
			for i, st := range script.Steps {
				ok, err := r.run(cmd, st)
				if err != nil {
					return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
				}
				if verbose {
					fmt.Fprintf(out, "%d %s %t %s\n", i+1, st.Op, ok, formatSelections(doc.Selections()))
				}
			}

			if asJSON {
				spans, err := doc.MarshalSpans()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%q\n%s\n", doc.Text(), spans)
				return nil
			}
			fmt.Fprintf(out, "%q\n", doc.Text())
			writeSegments(out, doc.Segments())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print spans as JSON instead of segments")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each step's outcome and selection")
	return cmd
}

var errNoCheckpoint = errors.New("no checkpoint recorded")

// runner applies script steps to one document and remembers the last
// checkpoint.
type runner struct {
	doc        *engine.Document
	checkpoint *engine.Checkpoint
}

func (r *runner) run(cmd *cobra.Command, st Step) (bool, error) {
	ctx := cmd.Context()
	switch st.Op {
	case opSelect:
		if err := r.doc.Select(st.Anchor, st.Head); err != nil {
			return false, err
		}
		return true, nil
	case opAddSelection:
		if err := r.doc.AddSelection(st.Anchor, st.Head); err != nil {
			return false, err
		}
		return true, nil
	case opCollapseSelections:
		return r.doc.CollapseSelections(), nil
	case opAnnotate:
		iv, ann, err := st.Annotation(span.DefaultRegistry)
		if err != nil {
			return false, err
		}
		return r.doc.Annotate(ctx, iv, ann)
	case opGroup:
		txs, err := st.Transactions()
		if err != nil {
			return false, err
		}
		name := st.Name
		if name == "" {
			name = opGroup
		}
		return r.doc.ApplyGroup(ctx, name, txs...)
	case opCheckpoint:
		cp := r.doc.Checkpoint()
		r.checkpoint = &cp
		return true, nil
	case opUndoToCheckpoint:
		if r.checkpoint == nil {
			return false, errNoCheckpoint
		}
		depth := len(r.doc.UndoHistory())
		if err := r.doc.UndoToCheckpoint(ctx, *r.checkpoint); err != nil {
			return false, err
		}
		return len(r.doc.UndoHistory()) != depth, nil
	}
	tx, err := st.Transaction()
	if err != nil {
		return false, err
	}
	return r.doc.Apply(ctx, tx)
}

func formatSelections(sels []engine.Selection) string {
	parts := make([]string, len(sels))
	for i, sel := range sels {
		parts[i] = sel.String()
	}
	return strings.Join(parts, " ")
}

// writeSegments prints one segment per line as "start-end width text attrs".
func writeSegments(w io.Writer, segs []engine.Segment) {
	for _, seg := range segs {
		fmt.Fprintf(w, "%d-%d\t%d\t%q", seg.Start, seg.End, seg.Width, seg.Text)
		if len(seg.Attrs) > 0 {
			fmt.Fprintf(w, "\t%s", formatAttrs(seg.Attrs))
		}
		fmt.Fprintln(w)
	}
}

func formatAttrs(attrs engine.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}
	return strings.Join(parts, " ")
}
