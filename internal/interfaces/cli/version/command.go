package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XavierPelle/sprintly/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sprintly %s\n", info.Version)
			if info.Major != "" {
				fmt.Fprintf(out, "  major:   %s\n", info.Major)
			}
			fmt.Fprintf(out, "  release: %t\n", info.Release)
		},
	}
}
