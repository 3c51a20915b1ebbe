// Package cli implements the todo command-line interface. Every subcommand
// is one open-mutate-save session over the configured task file; running
// todo without a subcommand starts the terminal UI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	format    string
	jsonMode  bool
}

// exitError carries the process exit code for a failed command. reported
// marks errors whose message the session already printed as a notice.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// sessionError classifies an error returned by a session handler. The
// session has already reported it to the user.
func sessionError(err error) error {
	code := exitSysError
	for _, target := range []error{types.ErrEmptyTitle, types.ErrInvalidText, types.ErrNoSelection, types.ErrIndexOutOfRange, types.ErrNotConfirmed} {
		if errors.Is(err, target) {
			code = exitUserError
			break
		}
	}
	return &exitError{code: code, err: err, reported: true}
}

// NewRootCmd creates the top-level "todo" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "todo",
		Short: "A single-user to-do list manager",
		Long: "todo keeps an ordered list of tasks in a local file. Run it without a\n" +
			"subcommand for the interactive terminal UI, or use the subcommands\n" +
			"to add, list, complete and delete tasks from scripts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/todolist)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/todolist)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: file or sqlite (overrides config.yaml)")
	root.PersistentFlags().StringVar(&flags.format, "format", "", "task file format: json, jsonl or yaml (overrides config.yaml)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newDoneCmd(flags))
	root.AddCommand(newRemoveCmd(flags))
	root.AddCommand(newSaveCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newTUICmd(flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.reported {
			fmt.Fprintln(stderr, "todo:", ee)
		}
		return ee.code
	}
	// Flag and argument errors from cobra itself.
	fmt.Fprintln(stderr, "todo:", err)
	return exitUserError
}
