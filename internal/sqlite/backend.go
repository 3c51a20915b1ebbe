// Package sqlite persists the task collection in a single-file SQLite
// database. Each save replaces the whole tasks table inside one transaction.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Backend implements types.Persister on a SQLite database file. The
// read-write connection is opened lazily by Save; Load reads through a
// read-only connection and never modifies the file.
type Backend struct {
	path   string
	db     *sql.DB
	closed bool
}

// NewBackend returns a Backend for the database at path.
func NewBackend(path string) (*Backend, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}
	return &Backend{path: path}, nil
}

// Path returns the database file location.
func (b *Backend) Path() string { return b.path }

// Save replaces every stored task with tasks, in order.
func (b *Backend) Save(tasks []types.Task) error {
	if b.closed {
		return types.ErrClosed
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	db, err := b.open()
	if err != nil {
		return fmt.Errorf("open %s: %w", b.path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteTasks); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.Prepare(insertTask)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err := stmt.Exec(i, task.Title, task.Description, task.Category, boolToInt(task.Completed)); err != nil {
			return fmt.Errorf("inserting task %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// Load returns the stored tasks ordered by position. A missing or
// zero-length database file, or a database without a tasks table, is an
// empty collection. Anything that cannot be read as a task database yields
// an empty collection and an error wrapping ErrMalformed.
func (b *Backend) Load() ([]types.Task, error) {
	if b.closed {
		return []types.Task{}, types.ErrClosed
	}
	info, err := os.Stat(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.Task{}, nil
		}
		return []types.Task{}, fmt.Errorf("stat %s: %w", b.path, err)
	}
	if info.IsDir() {
		return []types.Task{}, fmt.Errorf("read %s: is a directory", b.path)
	}
	if info.Size() == 0 {
		return []types.Task{}, nil
	}

	db := b.db
	if db == nil {
		ro, err := openReadOnly(b.path)
		if err != nil {
			return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
		}
		defer ro.Close()
		db = ro
	}

	var tables int
	if err := db.QueryRow(countTasksTable).Scan(&tables); err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	if tables == 0 {
		return []types.Task{}, nil
	}

	rows, err := db.Query(selectTasks)
	if err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		var task types.Task
		if err := rows.Scan(&task.Title, &task.Description, &task.Category, &task.Completed); err != nil {
			return []types.Task{}, fmt.Errorf("%w: scanning task: %v", types.ErrMalformed, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return []types.Task{}, fmt.Errorf("%w: %v", types.ErrMalformed, err)
	}
	return tasks, nil
}

// Close releases the database connection. Idempotent.
func (b *Backend) Close() error {
	b.closed = true
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// open connects read-write on first use and ensures the schema exists. A
// failed open is not cached, so a later call can retry.
func (b *Backend) open() (*sql.DB, error) {
	if b.db != nil {
		return b.db, nil
	}
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, err
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, err
		}
	}
	b.db = db
	return db, nil
}

// openReadOnly connects to the database at path with mode=ro.
func openReadOnly(path string) (*sql.DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}).String()
	return sql.Open("sqlite", dsn)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
