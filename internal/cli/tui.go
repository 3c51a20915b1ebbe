package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/app"
	"github.com/mesh-intelligence/todolist/internal/backend"
	"github.com/mesh-intelligence/todolist/internal/logging"
	"github.com/mesh-intelligence/todolist/internal/ui"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

// runTUI opens a session logging to its own file and hands it to the
// terminal UI. The UI saves on exit unless the user quits with ctrl+c.
func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	if !ui.IsTTY(os.Stdout) {
		return userError(fmt.Errorf("%w; use a subcommand such as list or add", ui.ErrNotTTY))
	}
	s, err := loadSettings(flags)
	if err != nil {
		return sysError(err)
	}

	sessionLog, err := logging.OpenSessionLog(s.DataDir)
	if err != nil {
		return sysError(err)
	}
	defer sessionLog.Close()
	logger, err := logging.New(sessionLog.Writer(), s.LogLevel)
	if err != nil {
		return sysError(err)
	}
	logger = logger.With("session", sessionLog.ID)

	p, err := backend.Open(s.Config)
	if err != nil {
		return sysError(fmt.Errorf("open %s: %w", s.Path, err))
	}
	logger.Info("tui started", "path", s.Path, "backend", s.Backend)

	notices := &ui.Notices{}
	session := app.Open(p,
		app.WithNotifier(notices),
		app.WithLogger(logger),
		app.WithDefaultCategory(s.DefaultCategory),
	)
	if err := ui.Run(cmd.Context(), session, notices); err != nil {
		if errors.Is(err, ui.ErrNotTTY) {
			_ = session.Close()
			return userError(err)
		}
		return sysError(fmt.Errorf("tui: %w (log: %s)", err, sessionLog.Path))
	}
	logger.Info("tui finished")
	return nil
}
