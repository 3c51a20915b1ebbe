package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultCategory is assigned to tasks added with a blank category.
const DefaultCategory = "General"

// Completion markers used when rendering a task.
const (
	MarkCompleted  = "✓"
	MarkIncomplete = "✗"
)

// Task is a single to-do item. It has no identifier beyond its position in
// the owning store.
type Task struct {
	Title       string `json:"title" yaml:"title"`             // Required, non-empty once created.
	Description string `json:"description" yaml:"description"` // Free text, may be empty.
	Category    string `json:"category" yaml:"category"`       // Defaults to DefaultCategory.
	Completed   bool   `json:"completed" yaml:"completed"`     // One-way: false -> true.
}

// NewTask builds an incomplete task from raw user input. All three fields
// are trimmed. A blank category becomes defaultCategory, or DefaultCategory
// when defaultCategory is itself blank.
// Returns ErrInvalidText if any field is not valid UTF-8, and ErrEmptyTitle
// if the trimmed title is empty.
func NewTask(title, description, category, defaultCategory string) (Task, error) {
	for _, field := range []string{title, description, category, defaultCategory} {
		if !utf8.ValidString(field) {
			return Task{}, ErrInvalidText
		}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = strings.TrimSpace(defaultCategory)
	}
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
	}, nil
}

// MarkCompleted sets the task completed. It reports whether the state
// changed; calling it on a completed task is a no-op that returns false.
func (t *Task) MarkCompleted() bool {
	if t.Completed {
		return false
	}
	t.Completed = true
	return true
}

// Mark returns the completion marker for the task.
func (t Task) Mark() string {
	if t.Completed {
		return MarkCompleted
	}
	return MarkIncomplete
}

// Line renders the task as a list entry at the given 1-based position,
// e.g. "1. Buy milk [General] - ✗".
func (t Task) Line(position int) string {
	return fmt.Sprintf("%d. %s [%s] - %s", position, t.Title, t.Category, t.Mark())
}

// String renders the long form including the description,
// e.g. "Buy milk [General] - ✗: 2%".
func (t Task) String() string {
	return fmt.Sprintf("%s [%s] - %s: %s", t.Title, t.Category, t.Mark(), t.Description)
}
