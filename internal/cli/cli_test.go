package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolist/internal/ui"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

type testDirs struct {
	config string
	data   string
}

func newDirs(t *testing.T) testDirs {
	t.Helper()
	root := t.TempDir()
	return testDirs{
		config: filepath.Join(root, "config"),
		data:   filepath.Join(root, "data"),
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

// exec runs the root command in-process with the test directories.
func (d testDirs) exec(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config-dir", d.config, "--data-dir", d.data))
	code := run(root, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (d testDirs) mustRun(t *testing.T, args ...string) result {
	t.Helper()
	r := d.exec(t, "", args...)
	require.Equal(t, exitSuccess, r.code, "todo %v: stderr=%s", args, r.stderr)
	return r
}

func TestAddListShow(t *testing.T) {
	d := newDirs(t)

	r := d.mustRun(t, "add", "Buy milk", "-d", "2%")
	assert.Equal(t, "Task added successfully!\n1. Buy milk [General] - ✗\n", r.stdout)
	assert.FileExists(t, filepath.Join(d.data, "tasks.json"))

	d.mustRun(t, "add", "Call bank", "--category", "Errands")

	r = d.mustRun(t, "list")
	assert.Equal(t, "1. Buy milk [General] - ✗\n2. Call bank [Errands] - ✗\n", r.stdout)

	r = d.mustRun(t, "show", "1")
	assert.Equal(t, "Buy milk [General] - ✗: 2%\n", r.stdout)
}

func TestAddEmptyTitle(t *testing.T) {
	d := newDirs(t)
	r := d.exec(t, "", "add", "   ")

	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "Input Error: Title cannot be empty.")
	assert.NotContains(t, r.stderr, "todo:", "reported once by the session")
	assert.NoFileExists(t, filepath.Join(d.data, "tasks.json"), "nothing saved")
}

func TestAddInvalidUTF8(t *testing.T) {
	d := newDirs(t)
	r := d.exec(t, "", "add", "caf\xe9")

	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "Input Error: Task text must be valid UTF-8.")
	assert.NoFileExists(t, filepath.Join(d.data, "tasks.json"), "nothing saved")
}

func TestDone(t *testing.T) {
	d := newDirs(t)
	d.mustRun(t, "add", "a")

	r := d.mustRun(t, "done", "1")
	assert.Equal(t, "Task marked as completed!\n", r.stdout)

	r = d.mustRun(t, "done", "1")
	assert.Equal(t, "Task is already marked as completed.\n", r.stdout)

	r = d.mustRun(t, "list")
	assert.Equal(t, "1. a [General] - ✓\n", r.stdout)
}

func TestSelectionErrors(t *testing.T) {
	d := newDirs(t)
	d.mustRun(t, "add", "a")

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"done out of range", []string{"done", "3"}, "Selection Error: Task 3 does not exist."},
		{"rm out of range", []string{"rm", "2", "--yes"}, "Selection Error: Task 2 does not exist."},
		{"show out of range", []string{"show", "9"}, "task 9 does not exist"},
		{"zero position", []string{"done", "0"}, `invalid task number "0"`},
		{"non-numeric position", []string{"show", "abc"}, `invalid task number "abc"`},
		{"missing argument", []string{"done"}, "accepts 1 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := d.exec(t, "", tt.args...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.stderr)
		})
	}

	r := d.mustRun(t, "list")
	assert.Equal(t, "1. a [General] - ✗\n", r.stdout, "failed commands leave the file alone")
}

func TestRemoveAsksForConfirmation(t *testing.T) {
	d := newDirs(t)
	d.mustRun(t, "add", "a")
	d.mustRun(t, "add", "b")
	d.mustRun(t, "add", "c")

	r := d.exec(t, "n\n", "rm", "1")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stdout, "Confirm Delete: Are you sure you want to delete 'a'? [y/N]")
	assert.Contains(t, r.stderr, "Delete cancelled.")

	r = d.exec(t, "", "rm", "1")
	assert.Equal(t, exitUserError, r.code, "no answer declines")

	r = d.exec(t, "yes\n", "rm", "2")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Task deleted successfully!")

	d.mustRun(t, "rm", "1", "--yes")

	r = d.mustRun(t, "list")
	assert.Equal(t, "1. c [General] - ✗\n", r.stdout)
}

func TestJSONOutput(t *testing.T) {
	d := newDirs(t)

	r := d.mustRun(t, "list", "--json")
	assert.Equal(t, "[]\n", r.stdout)

	r = d.mustRun(t, "add", "Buy milk", "-d", "2%", "--json")
	var added types.Task
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &added))
	assert.Equal(t, types.Task{Title: "Buy milk", Description: "2%", Category: "General"}, added)

	d.mustRun(t, "done", "1", "--json")
	r = d.mustRun(t, "list", "--json")
	var tasks []types.Task
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &tasks))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	r = d.mustRun(t, "show", "1", "--json")
	var shown types.Task
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &shown))
	assert.Equal(t, tasks[0], shown)
}

func TestSave(t *testing.T) {
	d := newDirs(t)
	r := d.mustRun(t, "save")
	assert.Equal(t, "Tasks have been saved successfully.\n", r.stdout)

	data, err := os.ReadFile(filepath.Join(d.data, "tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestBackendAndFormatFlags(t *testing.T) {
	tests := []struct {
		name string
		flag []string
		file string
	}{
		{"sqlite", []string{"--backend", "sqlite"}, "tasks.db"},
		{"yaml", []string{"--format", "yaml"}, "tasks.yaml"},
		{"jsonl", []string{"--format", "jsonl"}, "tasks.jsonl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDirs(t)
			d.mustRun(t, append([]string{"add", "a", "-d", "x"}, tt.flag...)...)
			d.mustRun(t, append([]string{"done", "1"}, tt.flag...)...)
			assert.FileExists(t, filepath.Join(d.data, tt.file))

			r := d.mustRun(t, append([]string{"list"}, tt.flag...)...)
			assert.Equal(t, "1. a [General] - ✓\n", r.stdout)

			r = d.mustRun(t, "list")
			assert.Empty(t, r.stdout, "default json file is separate")
		})
	}
}

func TestConfigFile(t *testing.T) {
	d := newDirs(t)
	require.NoError(t, os.MkdirAll(d.config, 0o755))
	yaml := "backend: sqlite\ndefault_category: Inbox\nfile: todo.sqlite\n"
	require.NoError(t, os.WriteFile(filepath.Join(d.config, "config.yaml"), []byte(yaml), 0o644))

	d.mustRun(t, "add", "x")
	r := d.mustRun(t, "list")
	assert.Equal(t, "1. x [Inbox] - ✗\n", r.stdout)
	assert.FileExists(t, filepath.Join(d.data, "todo.sqlite"))
}

func TestConfigCommand(t *testing.T) {
	d := newDirs(t)
	r := d.mustRun(t, "config", "--json")

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "file", got["backend"])
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, "General", got["default_category"])
	assert.Equal(t, "warn", got["log_level"])
	assert.Equal(t, filepath.Join(d.data, "tasks.json"), got["path"])
	assert.FileExists(t, filepath.Join(d.config, "config.yaml"), "default config written on first run")

	r = d.mustRun(t, "config")
	assert.Contains(t, r.stdout, "backend: file\n")
	assert.Contains(t, r.stdout, "data_dir: "+d.data+"\n")
}

func TestConfigEnvOverrides(t *testing.T) {
	d := newDirs(t)
	t.Setenv("TODO_BACKEND", "sqlite")

	r := d.mustRun(t, "config", "--json")
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "sqlite", got["backend"])
	assert.Empty(t, got["format"], "format does not apply to sqlite")

	r = d.mustRun(t, "config", "--json", "--backend", "file")
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "file", got["backend"], "flag beats environment")
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		flag []string
	}{
		{"unknown backend", "backend: mongo\n", nil},
		{"unknown format", "format: xml\n", nil},
		{"bad log level", "log_level: loud\n", nil},
		{"unknown format flag", "", []string{"--format", "toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDirs(t)
			require.NoError(t, os.MkdirAll(d.config, 0o755))
			if tt.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(d.config, "config.yaml"), []byte(tt.yaml), 0o644))
			}
			r := d.exec(t, "", append([]string{"list"}, tt.flag...)...)
			assert.Equal(t, exitSysError, r.code)
			assert.Contains(t, r.stderr, "todo:")
		})
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	d := newDirs(t)
	require.NoError(t, os.MkdirAll(d.data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(d.data, "tasks.json"), []byte("{broken"), 0o644))

	r := d.mustRun(t, "list")
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Load Error: Error loading tasks:")
	assert.Contains(t, r.stderr, "Starting with an empty task list.")
}

func TestExport(t *testing.T) {
	d := newDirs(t)
	d.mustRun(t, "add", "Buy milk", "-d", "2%")
	d.mustRun(t, "add", "Call bank")
	d.mustRun(t, "done", "2")

	r := d.mustRun(t, "export", "markdown")
	assert.Contains(t, r.stdout, "- [ ] **Buy milk** [General]: 2%\n")
	assert.Contains(t, r.stdout, "- [x] **Call bank** [General]\n")

	out := filepath.Join(t.TempDir(), "tasks.csv")
	r = d.mustRun(t, "export", "csv", "-o", out)
	assert.Contains(t, r.stderr, "Exported 2 tasks to "+out)
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2", "Call bank", "", "General", "true"}, records[2])

	pdf := filepath.Join(t.TempDir(), "tasks.pdf")
	d.mustRun(t, "export", "pdf", "-o", pdf)
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	r = d.exec(t, "", "export", "docx")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown export format")
}

func TestInit(t *testing.T) {
	d := newDirs(t)
	r := d.mustRun(t, "init")
	assert.Contains(t, r.stdout, "tasks:  "+filepath.Join(d.data, "tasks.json"))
	assert.DirExists(t, d.data)

	data, err := os.ReadFile(filepath.Join(d.config, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir: "+d.data)
}

func TestInitKeepsExistingConfig(t *testing.T) {
	d := newDirs(t)
	require.NoError(t, os.MkdirAll(d.config, 0o755))
	existing := "backend: sqlite\n"
	require.NoError(t, os.WriteFile(filepath.Join(d.config, "config.yaml"), []byte(existing), 0o644))

	r := d.mustRun(t, "init")
	assert.Contains(t, r.stdout, filepath.Join(d.data, "tasks.db"))
	data, err := os.ReadFile(filepath.Join(d.config, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(data))
}

func TestVersion(t *testing.T) {
	d := newDirs(t)
	r := d.mustRun(t, "version")
	assert.Equal(t, "todo v"+Version+"\nmodule: "+modulePath+"\ncommit: "+buildCommit+"\n", r.stdout)
}

func TestRootWithoutTTY(t *testing.T) {
	if ui.IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	d := newDirs(t)
	r := d.exec(t, "")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "tui requires a TTY")

	r = d.exec(t, "", "tui")
	assert.Equal(t, exitUserError, r.code)
}

func TestUnknownCommand(t *testing.T) {
	d := newDirs(t)
	r := d.exec(t, "", "frobnicate")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown command")
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"one", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parsePosition(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
