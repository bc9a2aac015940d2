package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/bluebook/internal/engine/cursor"
)

func newSegmentCmd(a *app) *cobra.Command {
	var (
		kind  string
		from  int
		limit int
		show  bool
	)
	cmd := &cobra.Command{
		Use:   "segment [file]",
		Short: "Print the boundaries of one granularity",
		Long: `Print every boundary of the chosen granularity (codepoint, grapheme,
word, sentence, paragraph, line, block) after --from, one per line.
Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := cursor.ParseKind(kind)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := a.newDocument(text)
			if err != nil {
				return err
			}
			offs, err := doc.Boundaries(k, from, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			prev := from
			for _, off := range offs {
				if !show {
					fmt.Fprintln(out, off)
					continue
				}
				piece, err := doc.Slice(prev, off)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d\t%q\n", off, piece)
				prev = off
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "grapheme",
		"granularity ("+strings.Join(kindNames(), ", ")+")")
	cmd.Flags().IntVar(&from, "from", 0, "byte offset to start from")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after n boundaries (0 for all)")
	cmd.Flags().BoolVar(&show, "show", false, "print the text between boundaries")
	return cmd
}

func kindNames() []string {
	kinds := []cursor.Kind{
		cursor.Codepoint, cursor.Grapheme, cursor.Word, cursor.Sentence,
		cursor.Paragraph, cursor.Line, cursor.Block,
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
