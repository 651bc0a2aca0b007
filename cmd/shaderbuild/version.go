package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/shaderbuild/internal/version"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of shaderbuild",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.String()) //nolint:errcheck // Best-effort terminal output
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shaderbuild version %s\n", info.Full()) //nolint:errcheck // Best-effort terminal output
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
