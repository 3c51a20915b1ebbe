package ui

import "github.com/mesh-intelligence/todolist/internal/app"

// Notices buffers session notices until the TUI renders them. Pass it to
// app.WithNotifier before opening the session so that load problems are
// shown on the first frame.
type Notices struct {
	items []app.Notice
}

// Notify implements app.Notifier.
func (n *Notices) Notify(notice app.Notice) {
	n.items = append(n.items, notice)
}

// Drain returns and clears the buffered notices.
func (n *Notices) Drain() []app.Notice {
	out := n.items
	n.items = nil
	return out
}
