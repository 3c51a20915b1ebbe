// Package app holds the presentation-neutral event handlers of the to-do
// manager. A Session owns the task store and its persister; presentation
// layers translate user actions into Session calls and render the notices
// it emits.
package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/todolist/internal/logging"
	"github.com/mesh-intelligence/todolist/internal/store"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Session is one open-mutate-save cycle over a task file.
type Session struct {
	store     *store.Store
	persister types.Persister
	notifier  Notifier
	logger    *log.Logger
	storeOpts []store.Option
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier routes notices to n. Without it notices are dropped.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultCategory sets the category for tasks added without one.
func WithDefaultCategory(category string) Option {
	return func(s *Session) {
		s.storeOpts = append(s.storeOpts, store.WithDefaultCategory(category))
	}
}

// Open creates a Session and loads the task collection from p. Load
// problems are reported through the notifier and the session starts empty;
// Open itself never fails because of them.
func Open(p types.Persister, opts ...Option) *Session {
	s := &Session{
		persister: p,
		notifier:  NotifierFunc(func(Notice) {}),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = store.New(nil, s.storeOpts...)
	s.Reload()
	return s
}

// Reload replaces the in-memory collection with the persisted one.
func (s *Session) Reload() {
	tasks, err := s.persister.Load()
	if err != nil {
		s.logger.Warn("load failed, starting empty", "err", err)
		s.notify(LevelError, TitleLoadError, fmt.Sprintf("Error loading tasks: %v. Starting with an empty task list.", err))
		tasks = nil
	}
	s.store.Replace(tasks)
	s.logger.Debug("tasks loaded", "count", s.store.Len())
}

// Add handles the add action. The returned error is ErrEmptyTitle when the
// title is blank and ErrInvalidText when a field is not valid UTF-8; the
// store is then unchanged.
func (s *Session) Add(title, description, category string) error {
	task, err := s.store.Add(title, description, category)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrEmptyTitle):
			s.notify(LevelError, TitleInputError, MsgEmptyTitle)
		case errors.Is(err, types.ErrInvalidText):
			s.notify(LevelError, TitleInputError, MsgInvalidText)
		}
		return err
	}
	s.logger.Info("task added", "position", s.store.Len(), "title", task.Title, "category", task.Category)
	s.notify(LevelInfo, TitleSuccess, MsgTaskAdded)
	return nil
}

// Complete handles the mark-complete action for the 0-based index; a
// negative index means nothing is selected. Completing a completed task
// reports it and returns nil.
func (s *Session) Complete(index int) error {
	changed, err := s.store.MarkComplete(index)
	if err != nil {
		s.selectionError(err, index, MsgSelectComplete)
		return err
	}
	if !changed {
		s.notify(LevelInfo, TitleInfo, MsgAlreadyCompleted)
		return nil
	}
	s.logger.Info("task completed", "position", index+1)
	s.notify(LevelInfo, TitleSuccess, MsgTaskCompleted)
	return nil
}

// Delete handles the delete action for the 0-based index. confirm is asked
// with the selected task; declining returns ErrNotConfirmed silently.
func (s *Session) Delete(index int, confirm store.ConfirmFunc) error {
	task, err := s.store.Delete(index, confirm)
	if err != nil {
		if errors.Is(err, types.ErrNotConfirmed) {
			s.logger.Debug("delete declined", "position", index+1)
			return err
		}
		s.selectionError(err, index, MsgSelectDelete)
		return err
	}
	s.logger.Info("task deleted", "position", index+1, "title", task.Title)
	s.notify(LevelInfo, TitleDeleted, MsgTaskDeleted)
	return nil
}

// Save persists the whole collection. A failure is reported and returned;
// the in-memory collection is untouched either way.
func (s *Session) Save() error {
	if err := s.persister.Save(s.store.Tasks()); err != nil {
		s.logger.Error("save failed", "err", err)
		s.notify(LevelError, TitleSaveError, fmt.Sprintf("Error saving tasks: %v", err))
		return err
	}
	s.logger.Info("tasks saved", "count", s.store.Len())
	s.notify(LevelInfo, TitleSaved, MsgTasksSaved)
	return nil
}

// Exit saves and releases the persister. The save error, if any, is
// returned after the persister has been closed.
func (s *Session) Exit() error {
	saveErr := s.Save()
	if err := s.persister.Close(); err != nil {
		s.logger.Warn("close failed", "err", err)
	}
	return saveErr
}

// Close releases the persister without saving.
func (s *Session) Close() error {
	s.logger.Info("closing without save", "count", s.store.Len())
	return s.persister.Close()
}

// Lines returns the display lines for the current collection.
func (s *Session) Lines() []string {
	return s.store.List()
}

// Tasks returns a copy of the current collection.
func (s *Session) Tasks() []types.Task {
	return s.store.Tasks()
}

// Task returns the task at the 0-based index.
func (s *Session) Task(index int) (types.Task, error) {
	return s.store.Get(index)
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	return s.store.Len()
}

func (s *Session) selectionError(err error, index int, noSelection string) {
	switch {
	case errors.Is(err, types.ErrNoSelection):
		s.notify(LevelWarning, TitleSelectionError, noSelection)
	case errors.Is(err, types.ErrIndexOutOfRange):
		s.notify(LevelWarning, TitleSelectionError, fmt.Sprintf("Task %d does not exist.", index+1))
	}
}

func (s *Session) notify(level Level, title, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(Notice{Level: level, Title: title, Message: message})
}
