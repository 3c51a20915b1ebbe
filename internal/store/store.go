// Package store holds the ordered in-memory task collection for a session.
// Tasks are addressed by their current 0-based position; deleting a task
// shifts every later task down by one.
package store

import (
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// ConfirmFunc is asked before a destructive operation on task. Returning
// false aborts the operation.
type ConfirmFunc func(task types.Task) bool

// Store is the ordered task collection. Insertion order is display order.
// A Store is not safe for concurrent use; it belongs to a single event loop.
type Store struct {
	tasks           []types.Task
	defaultCategory string
}

// Option configures a Store.
type Option func(*Store)

// WithDefaultCategory sets the category given to tasks added with a blank
// category.
func WithDefaultCategory(category string) Option {
	return func(s *Store) {
		s.defaultCategory = category
	}
}

// New creates a Store seeded with tasks. The slice is copied.
func New(tasks []types.Task, opts ...Option) *Store {
	s := &Store{defaultCategory: types.DefaultCategory}
	for _, opt := range opts {
		opt(s)
	}
	s.Replace(tasks)
	return s
}

// Add appends a new incomplete task. Returns ErrEmptyTitle when the trimmed
// title is empty and ErrInvalidText when a field is not valid UTF-8; the
// store is unchanged in both cases.
func (s *Store) Add(title, description, category string) (types.Task, error) {
	task, err := types.NewTask(title, description, category, s.defaultCategory)
	if err != nil {
		return types.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// MarkComplete marks the task at index completed. It reports whether the
// state changed; an already completed task is left as is and yields false
// with a nil error.
func (s *Store) MarkComplete(index int) (bool, error) {
	if err := s.check(index); err != nil {
		return false, err
	}
	return s.tasks[index].MarkCompleted(), nil
}

// Delete removes the task at index after confirm approves it. A nil
// confirm, or one that answers false, yields ErrNotConfirmed and leaves the
// store unchanged. Returns the removed task.
func (s *Store) Delete(index int, confirm ConfirmFunc) (types.Task, error) {
	if err := s.check(index); err != nil {
		return types.Task{}, err
	}
	task := s.tasks[index]
	if confirm == nil || !confirm(task) {
		return types.Task{}, types.ErrNotConfirmed
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return task, nil
}

// Get returns the task at index.
func (s *Store) Get(index int) (types.Task, error) {
	if err := s.check(index); err != nil {
		return types.Task{}, err
	}
	return s.tasks[index], nil
}

// List renders every task as a display line with its 1-based position.
func (s *Store) List() []string {
	lines := make([]string, len(s.tasks))
	for i, task := range s.tasks {
		lines[i] = task.Line(i + 1)
	}
	return lines
}

// Tasks returns a copy of the collection in order.
func (s *Store) Tasks() []types.Task {
	out := make([]types.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Replace swaps the whole collection, e.g. after a load.
func (s *Store) Replace(tasks []types.Task) {
	s.tasks = make([]types.Task, len(tasks))
	copy(s.tasks, tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// check validates a selection index. Negative means nothing is selected.
func (s *Store) check(index int) error {
	if index < 0 {
		return types.ErrNoSelection
	}
	if index >= len(s.tasks) {
		return types.ErrIndexOutOfRange
	}
	return nil
}
