package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(root.stdout, "hookbus %s\n", version)
			fmt.Fprintf(root.stdout, "Commit: %s\n", commit)
			fmt.Fprintf(root.stdout, "Built: %s\n", date)
		},
	}
}
