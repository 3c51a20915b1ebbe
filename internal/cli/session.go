package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/app"
	"github.com/mesh-intelligence/todolist/internal/backend"
	"github.com/mesh-intelligence/todolist/internal/logging"
)

// cliNotifier prints informational notices to out and problems to errOut.
// Save confirmations are left to the save command; every mutating command
// saves implicitly.
type cliNotifier struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

func (n cliNotifier) Notify(notice app.Notice) {
	if notice.Level != app.LevelInfo {
		fmt.Fprintln(n.errOut, notice.String())
		return
	}
	if n.quiet || notice.Title == app.TitleSaved {
		return
	}
	fmt.Fprintln(n.out, notice.Message)
}

// openSession loads the configured task file. The caller ends the session
// with finish.
func openSession(cmd *cobra.Command, flags *rootFlags) (*app.Session, error) {
	s, err := loadSettings(flags)
	if err != nil {
		return nil, sysError(err)
	}
	logger, err := logging.New(cmd.ErrOrStderr(), s.LogLevel)
	if err != nil {
		return nil, sysError(err)
	}
	logger = logger.With("session", logging.NewSessionID())

	p, err := backend.Open(s.Config)
	if err != nil {
		return nil, sysError(fmt.Errorf("open %s: %w", s.Path, err))
	}
	logger.Debug("task file opened", "path", s.Path, "backend", s.Backend)

	notifier := cliNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), quiet: flags.jsonMode}
	return app.Open(p,
		app.WithNotifier(notifier),
		app.WithLogger(logger),
		app.WithDefaultCategory(s.DefaultCategory),
	), nil
}

// finish saves and closes a session that mutated the collection, or only
// closes it otherwise.
func finish(session *app.Session, mutated bool) error {
	if !mutated {
		if err := session.Close(); err != nil {
			return sysError(fmt.Errorf("close: %w", err))
		}
		return nil
	}
	if err := session.Exit(); err != nil {
		return sessionError(err)
	}
	return nil
}

// parsePosition converts a 1-based task number argument into a 0-based
// index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, userError(fmt.Errorf("invalid task number %q: must be a positive integer", arg))
	}
	return n - 1, nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
