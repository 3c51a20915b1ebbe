// Package flatfile persists the task collection as a single structured text
// file (JSON, JSONL or YAML). Saves are atomic and wholesale; loads are
// schema-checked and rebuilt field by field.
package flatfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Backend implements types.Persister over one flat file.
type Backend struct {
	path   string
	format string
	codec  codec
	closed bool
}

// New returns a Backend for path in the given format. An empty format
// means JSON. The file is not touched until Save or Load.
func New(path, format string) (*Backend, error) {
	if format == "" {
		format = types.FormatJSON
	}
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrFormatUnknown, format)
	}
	if path == "" {
		return nil, errors.New("task file path is empty")
	}
	return &Backend{path: path, format: format, codec: c}, nil
}

// Path returns the task file location.
func (b *Backend) Path() string { return b.path }

// Format returns the file format name.
func (b *Backend) Format() string { return b.format }

// Save serialises all tasks in order and replaces the file.
func (b *Backend) Save(tasks []types.Task) error {
	if b.closed {
		return types.ErrClosed
	}
	if tasks == nil {
		tasks = []types.Task{}
	}
	data, err := b.codec.encode(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.format, err)
	}
	if err := writeAtomic(b.path, data); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	return nil
}

// Load reads the file back. A missing or blank file is an empty collection.
// Any read, decode or validation failure returns an empty collection along
// with the error, so callers can report it and carry on.
func (b *Backend) Load() ([]types.Task, error) {
	if b.closed {
		return []types.Task{}, types.ErrClosed
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.Task{}, nil
		}
		return []types.Task{}, fmt.Errorf("read %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []types.Task{}, nil
	}
	return parse(b.codec, data)
}

// Close marks the backend closed. Idempotent.
func (b *Backend) Close() error {
	b.closed = true
	return nil
}

// parse decodes, validates and converts data. It is all-or-nothing: any
// failure discards the whole document.
func parse(c codec, data []byte) ([]types.Task, error) {
	doc, err := c.decode(data)
	if err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	if err := validateDocument(doc); err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	tasks, err := toTasks(doc)
	if err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	return tasks, nil
}

// toTasks rebuilds each task from its four stored fields. Unknown fields
// are ignored; a missing completed flag means false.
func toTasks(doc any) ([]types.Task, error) {
	records, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of tasks, got %T", doc)
	}
	tasks := make([]types.Task, 0, len(records))
	for i, rec := range records {
		fields, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, rec)
		}
		var task types.Task
		var err error
		if task.Title, err = stringField(fields, "title"); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if task.Description, err = stringField(fields, "description"); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if task.Category, err = stringField(fields, "category"); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if task.Completed, err = boolField(fields, "completed"); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("missing %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", name, v)
	}
	return s, nil
}

func boolField(fields map[string]any, name string) (bool, error) {
	v, ok := fields[name]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%q must be a boolean, got %T", name, v)
	}
	return b, nil
}
