package sqlite

// Schema DDL. position is the 0-based display order; it is rewritten in
// full on every save.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    category TEXT NOT NULL,
    completed INTEGER NOT NULL CHECK (completed IN (0, 1))
);`

	countTasksTable = `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`

	selectTasks = `SELECT title, description, category, completed FROM tasks ORDER BY position`
	deleteTasks = `DELETE FROM tasks`
	insertTask  = `INSERT INTO tasks (position, title, description, category, completed) VALUES (?, ?, ?, ?, ?)`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createTasks,
}
