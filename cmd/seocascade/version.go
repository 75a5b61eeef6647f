package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of seocascade",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "seocascade version %s\n", version)
		},
	}
}
