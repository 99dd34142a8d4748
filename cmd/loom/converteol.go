package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomtext/loom/internal/editor"
	"github.com/loomtext/loom/internal/engine/buffer"
	"github.com/loomtext/loom/internal/engine/history"
)

func newConvertEOLCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert-eol --to lf|crlf <file>...",
		Short: "Rewrite line terminators and save atomically",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target buffer.LineEnding
			switch to {
			case "lf":
				target = buffer.LineEndingLF
			case "crlf":
				target = buffer.LineEndingCRLF
			default:
				return fmt.Errorf("unknown line ending %q (want lf or crlf)", to)
			}

			ed, err := newEditor()
			if err != nil {
				return err
			}
			for _, path := range args {
				b, err := ed.OpenBuffer(path)
				if err != nil {
					return err
				}
				changed, err := convertEOL(ed, b, target)
				if err != nil {
					return fmt.Errorf("convert %s: %w", path, err)
				}
				if !changed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: already %s\n", path, target)
					continue
				}
				if err := ed.SaveActive(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: converted to %s\n", path, target)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "lf", "target line ending: lf or crlf")
	return cmd
}

// convertEOL rewrites every terminator in the buffer to the target
// style as a single reversible replacement.
func convertEOL(ed *editor.Editor, b *buffer.Buffer, target buffer.LineEnding) (bool, error) {
	text := b.Text()
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	converted := normalized
	if target == buffer.LineEndingCRLF {
		converted = strings.ReplaceAll(normalized, "\n", "\r\n")
	}
	if converted == text {
		if b.LineEnding() != target {
			b.SetLineEnding(target)
		}
		return false, nil
	}
	if err := ed.ExecuteCommand(history.NewReplace(0, b.Len(), converted)); err != nil {
		return false, err
	}
	b.SetLineEnding(target)
	return true, nil
}
