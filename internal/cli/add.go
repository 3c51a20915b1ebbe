package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(flags *rootFlags) *cobra.Command {
	var description, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task and save",
		Example: `  todo add "Buy milk" -d 2% -c Groceries
  todo add "Call the bank"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := session.Add(args[0], description, category); err != nil {
				_ = session.Close()
				return sessionError(err)
			}
			last := session.Len() - 1
			if err := finish(session, true); err != nil {
				return err
			}

			if flags.jsonMode {
				task, err := session.Task(last)
				if err != nil {
					return sysError(err)
				}
				return writeJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Lines()[last])
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "task category (default from config, General)")
	return cmd
}
