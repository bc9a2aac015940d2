package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/bluebook/internal/engine"
)

func newPositionCmd(a *app) *cobra.Command {
	var (
		offset    int
		line, col int
	)
	cmd := &cobra.Command{
		Use:   "position [file]",
		Short: "Convert between byte offsets and line/UTF-16 positions",
		Long: `With --offset, print the line and UTF-16 column of a byte offset.
With --line and --col, print the byte offset of that position.
Lines and columns are zero-based.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byOffset := cmd.Flags().Changed("offset")
			byPos := cmd.Flags().Changed("line") || cmd.Flags().Changed("col")
			if byOffset == byPos {
				return errors.New("give either --offset or --line/--col")
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := a.newDocument(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if byOffset {
				pos, err := doc.Position(offset)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d:%d\n", pos.Line, pos.Character)
				return nil
			}
			off, err := doc.Offset(engine.Position{Line: line, Character: col})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, off)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset")
	cmd.Flags().IntVar(&line, "line", 0, "line number")
	cmd.Flags().IntVar(&col, "col", 0, "UTF-16 column")
	return cmd
}
