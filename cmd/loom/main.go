// Command loom exposes the editing core on the command line: inspect
// reports file facts through the editor, convert-eol rewrites line
// terminators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomtext/loom/internal/config"
	"github.com/loomtext/loom/internal/editor"
	"github.com/loomtext/loom/internal/logger"
)

var debug bool

func main() {
	root := &cobra.Command{
		Use:   "loom",
		Short: "Text editing core utilities",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Logging failure is survivable; the no-op logger stays.
			_ = logger.Init(debug)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newConvertEOLCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "loom:", err)
		os.Exit(1)
	}
}

func newEditor() (*editor.Editor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return editor.New(cfg), nil
}
