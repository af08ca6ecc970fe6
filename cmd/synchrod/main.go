// Command synchrod is synchro's CLI entrypoint: "run" drives a live
// interpreter against configured platform adapters, "simulate" drives the
// same core against scripted sources on a virtual clock. Grounded on
// original_source/src/main.rs's subcommand dispatch, translated from a
// hand-rolled arg switch into a spf13/cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/synchro-systems/synchro/cmd/synchrod/command"
)

func main() {
	if err := command.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
