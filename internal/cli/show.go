package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <n>",
		Short: "Display task n with its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := finish(session, false); err != nil {
				return err
			}

			task, err := session.Task(index)
			if err != nil {
				return userError(fmt.Errorf("task %d does not exist", index+1))
			}
			if flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.String())
			return nil
		},
	}
}
