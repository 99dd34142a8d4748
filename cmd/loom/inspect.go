package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/loomtext/loom/internal/engine/buffer"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Report path, language, line endings and size of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := newEditor()
			if err != nil {
				return err
			}
			for _, path := range args {
				b, err := ed.OpenBuffer(path)
				if err != nil {
					return err
				}
				printReport(cmd, b)
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, b *buffer.Buffer) {
	lang := b.Language()
	if lang == "" {
		lang = "plain"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", b.Path())
	fmt.Fprintf(out, "  language:    %s\n", lang)
	fmt.Fprintf(out, "  line ending: %s\n", b.LineEnding())
	fmt.Fprintf(out, "  lines:       %d\n", b.LineCount())
	fmt.Fprintf(out, "  bytes:       %d\n", b.Len())
	fmt.Fprintf(out, "  utf16 units: %d\n", b.UTF16Len())
	fmt.Fprintf(out, "  max width:   %d\n", maxLineWidth(b))
}

// maxLineWidth returns the widest line in terminal cells, counting
// wide East Asian characters as two.
func maxLineWidth(b *buffer.Buffer) int {
	widest := 0
	for i := 0; i < b.LineCount(); i++ {
		if w := runewidth.StringWidth(b.LineText(i)); w > widest {
			widest = w
		}
	}
	return widest
}
