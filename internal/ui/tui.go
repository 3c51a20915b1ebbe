// Package ui provides the full-screen terminal interface of the to-do
// manager. The model translates key and mouse events into app.Session calls
// and re-renders the task list after every one of them.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/todolist/internal/app"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// ErrNotTTY is returned by Run when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	focusList
)

const (
	defaultListRows = 10
	minListRows     = 3
	// Rows taken by the header, the input pane, notices and help.
	chromeRows = 20
	wideLayout = 100
)

var fieldLabels = [...]string{"Title:", "Description:", "Category:"}

// Run starts the TUI over an open session. notices must be the notifier the
// session was opened with. The returned error is the save error of the final
// exit, if any.
func Run(ctx context.Context, session *app.Session, notices *Notices) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	return runProgram(ctx, New(session, notices))
}

func runProgram(ctx context.Context, model *Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*Model); ok {
		return m.exitErr
	}
	return nil
}

// Model is the bubbletea model of the task manager.
type Model struct {
	session *app.Session
	notices *Notices
	keys    keyMap
	help    help.Model

	inputs [3]textinput.Model
	focus  int

	selected int
	offset   int
	width    int
	height   int

	confirming bool
	confirmAt  int

	shown    []app.Notice
	quitting bool
	exitErr  error
}

// New builds a model with the title input focused and nothing selected.
func New(session *app.Session, notices *Notices) *Model {
	if notices == nil {
		notices = &Notices{}
	}
	m := &Model{
		session:  session,
		notices:  notices,
		keys:     defaultKeyMap(),
		help:     help.New(),
		selected: -1,
	}
	placeholders := [...]string{"Buy milk", "optional", types.DefaultCategory}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		ti.PromptStyle = labelStyle
		m.inputs[i] = ti
	}
	m.inputs[fieldTitle].Focus()
	m.pullNotices()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		return m.handleConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.session.Close(); err != nil {
			m.exitErr = err
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		_ = m.session.Save()
		m.pullNotices()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % (focusList + 1))
	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + focusList) % (focusList + 1))
	}

	if m.focus != focusList {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.Add):
		return m, m.add()
	}
	return m.updateInput(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.session.Len()
	switch {
	case key.Matches(msg, m.keys.Exit), key.Matches(msg, m.keys.Back):
		m.exitErr = m.session.Exit()
		m.pullNotices()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.listRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.listRows())
	case key.Matches(msg, m.keys.Home):
		if n > 0 {
			m.selected = 0
		}
	case key.Matches(msg, m.keys.End):
		if n > 0 {
			m.selected = n - 1
		}
	case key.Matches(msg, m.keys.Complete):
		_ = m.session.Complete(m.selected)
		m.pullNotices()
	case key.Matches(msg, m.keys.Delete):
		m.requestDelete()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.ensureVisible()
	return m, nil
}

func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch {
	case key.Matches(msg, m.keys.Confirm):
		answer = true
	case key.Matches(msg, m.keys.Cancel):
		answer = false
	case key.Matches(msg, m.keys.Quit):
		m.confirming = false
		return m.handleKey(msg)
	default:
		return m, nil
	}
	m.confirming = false
	_ = m.session.Delete(m.confirmAt, func(types.Task) bool { return answer })
	m.pullNotices()
	if m.selected >= m.session.Len() {
		m.selected = m.session.Len() - 1
	}
	m.ensureVisible()
	return m, nil
}

// requestDelete opens the confirmation prompt for the selection. Without a
// valid selection the session is asked directly so that it reports the
// selection error.
func (m *Model) requestDelete() {
	if m.selected < 0 || m.selected >= m.session.Len() {
		_ = m.session.Delete(m.selected, nil)
		m.pullNotices()
		return
	}
	m.confirming = true
	m.confirmAt = m.selected
}

func (m *Model) add() tea.Cmd {
	err := m.session.Add(
		m.inputs[fieldTitle].Value(),
		m.inputs[fieldDescription].Value(),
		m.inputs[fieldCategory].Value(),
	)
	m.pullNotices()
	if err != nil {
		return nil
	}
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.selected = m.session.Len() - 1
	m.ensureVisible()
	return m.setFocus(fieldTitle)
}

func (m *Model) setFocus(focus int) tea.Cmd {
	m.focus = focus
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	if focus == focusList && m.selected < 0 && m.session.Len() > 0 {
		m.selected = 0
	}
	return cmd
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == focusList {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) moveSelection(delta int) {
	n := m.session.Len()
	if n == 0 {
		m.selected = -1
		return
	}
	if m.selected < 0 {
		m.selected = 0
		return
	}
	m.selected = clamp(m.selected+delta, 0, n-1)
}

// scroll moves the viewport without touching the selection.
func (m *Model) scroll(delta int) {
	maxOffset := max(0, m.session.Len()-m.listRows())
	m.offset = clamp(m.offset+delta, 0, maxOffset)
}

func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.selected >= 0 {
		if m.selected < m.offset {
			m.offset = m.selected
		}
		if m.selected >= m.offset+rows {
			m.offset = m.selected - rows + 1
		}
	}
	m.offset = clamp(m.offset, 0, max(0, m.session.Len()-rows))
}

func (m *Model) listRows() int {
	if m.height == 0 {
		return defaultListRows
	}
	return max(minListRows, m.height-chromeRows)
}

func (m *Model) pullNotices() {
	if drained := m.notices.Drain(); len(drained) > 0 {
		m.shown = drained
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("To-Do List Manager"))
	b.WriteString("\n")

	form := m.renderForm()
	list := m.renderList()
	if m.width >= wideLayout {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, " ", list))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, form, list))
	}
	b.WriteString("\n")

	if m.confirming {
		if task, err := m.session.Task(m.confirmAt); err == nil {
			prompt := fmt.Sprintf("%s: %s  [y/N]", app.TitleConfirmDelete, app.ConfirmDeletePrompt(task.Title))
			b.WriteString(confirmStyle.Render(prompt))
			b.WriteString("\n")
		}
	}
	for _, n := range m.shown {
		b.WriteString(noticeStyle(n.Level).Render(n.String()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Add New Task"))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	style := paneStyle
	if m.focus != focusList {
		style = focusedPaneStyle
	}
	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Current Tasks"))
	b.WriteString("\n")

	lines := m.session.Lines()
	if len(lines) == 0 {
		b.WriteString(emptyStyle.Render("No tasks yet."))
	}
	tasks := m.session.Tasks()
	end := min(len(lines), m.offset+m.listRows())
	for i := m.offset; i < end; i++ {
		line := lines[i]
		switch {
		case i == m.selected:
			line = selectedStyle.Render(line)
		case tasks[i].Completed:
			line = completedStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(lines) > end || m.offset > 0 {
		fmt.Fprintf(&b, "\n%s", emptyStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(lines))))
	}

	style := paneStyle
	if m.focus == focusList {
		style = focusedPaneStyle
	}
	return style.Render(b.String())
}

func noticeStyle(level app.Level) lipgloss.Style {
	switch level {
	case app.LevelError:
		return errorStyle
	case app.LevelWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
