package cli

import (
	"github.com/spf13/cobra"
)

func newDoneCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "done <n>",
		Aliases: []string{"complete"},
		Short:   "Mark task n as completed and save",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := session.Complete(index); err != nil {
				_ = session.Close()
				return sessionError(err)
			}
			if err := finish(session, true); err != nil {
				return err
			}
			if flags.jsonMode {
				task, err := session.Task(index)
				if err != nil {
					return sysError(err)
				}
				return writeJSON(cmd.OutOrStdout(), task)
			}
			return nil
		},
	}
}
