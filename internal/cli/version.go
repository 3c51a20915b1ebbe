package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the released version of the todo tool.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/todolist"

// buildCommit is set at link time by the build target.
var buildCommit = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the todo version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "todo v%s\nmodule: %s\ncommit: %s\n", Version, modulePath, buildCommit)
			return nil
		},
	}
}
