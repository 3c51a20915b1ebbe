package app

import "fmt"

// Level classifies a Notice the way a dialog box would: informational,
// a warning about the user's selection, or an error.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a user-facing message produced by a Session handler.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// String renders the notice as "Title: Message".
func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// Notifier receives notices from a Session.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Notice titles.
const (
	TitleSuccess        = "Success"
	TitleInfo           = "Info"
	TitleDeleted        = "Deleted"
	TitleSaved          = "Saved"
	TitleInputError     = "Input Error"
	TitleSelectionError = "Selection Error"
	TitleSaveError      = "Save Error"
	TitleLoadError      = "Load Error"
	TitleConfirmDelete  = "Confirm Delete"
)

// Notice messages.
const (
	MsgTaskAdded        = "Task added successfully!"
	MsgTaskCompleted    = "Task marked as completed!"
	MsgAlreadyCompleted = "Task is already marked as completed."
	MsgTaskDeleted      = "Task deleted successfully!"
	MsgTasksSaved       = "Tasks have been saved successfully."
	MsgEmptyTitle       = "Title cannot be empty."
	MsgInvalidText      = "Task text must be valid UTF-8."
	MsgSelectComplete   = "Please select a task to mark as completed."
	MsgSelectDelete     = "Please select a task to delete."
)

// ConfirmDeletePrompt is the question asked before deleting task title.
func ConfirmDeletePrompt(title string) string {
	return fmt.Sprintf("Are you sure you want to delete '%s'?", title)
}
