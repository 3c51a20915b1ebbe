package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/app"
	"github.com/mesh-intelligence/todolist/internal/store"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete task n after confirmation and save",
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

			confirm := promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = func(types.Task) bool { return true }
			}
			if err := session.Delete(index, confirm); err != nil {
				_ = session.Close()
				if errors.Is(err, types.ErrNotConfirmed) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Delete cancelled.")
				}
				return sessionError(err)
			}
			return finish(session, true)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

// promptConfirm asks the delete question on out and reads the answer from
// in. Anything but y or yes declines.
func promptConfirm(in io.Reader, out io.Writer) store.ConfirmFunc {
	return func(task types.Task) bool {
		fmt.Fprintf(out, "%s: %s [y/N] ", app.TitleConfirmDelete, app.ConfirmDeletePrompt(task.Title))
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
