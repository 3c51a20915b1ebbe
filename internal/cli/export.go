package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/export"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "export <" + strings.Join(export.Formats, "|") + ">",
		Short:     "Render the task list as a PDF, CSV or Markdown document",
		Example:   "  todo export pdf -o tasks.pdf\n  todo export markdown",
		Args:      cobra.ExactArgs(1),
		ValidArgs: export.Formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			if err := finish(session, false); err != nil {
				return err
			}

			doc, err := export.Render(session.Tasks(), args[0])
			if err != nil {
				return userError(err)
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return sysError(fmt.Errorf("write %s: %w", output, err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", session.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
