package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/app"
)

func newSaveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Load and rewrite the task file",
		Long:  "Load the task file and write it back in its canonical layout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := finish(session, true); err != nil {
				return err
			}
			if !flags.jsonMode {
				fmt.Fprintln(cmd.OutOrStdout(), app.MsgTasksSaved)
			}
			return nil
		},
	}
}
