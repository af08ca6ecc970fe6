// Package command implements synchrod's cobra command tree.
package command

import (
	"github.com/spf13/cobra"
)

// Root builds the top-level "synchrod" command with its "run" and
// "simulate" subcommands attached.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "synchrod",
		Short: "synchro interval-stamped value synchronization daemon",
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newSimulateCommand())

	return root
}
