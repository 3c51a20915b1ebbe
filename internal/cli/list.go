package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := finish(session, false); err != nil {
				return err
			}

			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), session.Tasks())
			}
			for _, line := range session.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
