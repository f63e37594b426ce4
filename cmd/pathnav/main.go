// Command pathnav is a small demonstration CLI around the pathcursor
// package: each subcommand runs one query family against a path
// expression given on the command line, or against a batch of them
// loaded from a YAML file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pathnav",
		Short: "pathnav — inspect XPath instance-identifier expressions",
		Long: `pathnav runs pathcursor queries against a path expression from the
command line, or a batch of them described in a YAML file (see batch -f).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newNodeCmd(),
		newNodesCmd(),
		newKeyCmd(),
		newKeysCmd(),
		newLastCmd(),
		newEqCmd(),
		newBatchCmd(),
	)
	return root
}
