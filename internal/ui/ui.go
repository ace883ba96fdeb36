package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickmd/internal/checklist"
	"tickmd/internal/config"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	doneStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// CommitFunc persists the checklist after an edit. op and args describe the
// edit for the journal.
type CommitFunc func(op, args string) error

type Model struct {
	list       *checklist.Checklist
	commit     CommitFunc
	title      string
	cfg        config.Config
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel int
}

// New builds the model over list. title is shown in the header.
func New(list *checklist.Checklist, cfg config.Config, title string, commit CommitFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		list:   list,
		commit: commit,
		title:  title,
		cfg:    cfg,
		cursor: clampCursor(0, list.Len()),
		status: fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
		input:  ti,
		mode:   modeList,
	}
}

func Run(list *checklist.Checklist, cfg config.Config, title string, commit CommitFunc) error {
	program := tea.NewProgram(New(list, cfg, title, commit))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		// New tasks land below the cursor.
		at := m.list.Len() + 1
		if m.list.Len() > 0 {
			at = m.cursor + 2
		}
		idx := m.list.AddAt(text, at)
		m.cursor = clampCursor(idx-1, m.list.Len())
		m.status = m.save("add", fmt.Sprintf("%d %s", idx, text), fmt.Sprintf("Added task %d", idx))
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	n := m.list.Len()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, n)
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, n)
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Add mode: type the task and press Enter"
	case m.cfg.Keys.Toggle:
		if n == 0 {
			return m, nil
		}
		idx := m.cursor + 1
		task, _ := m.list.Task(idx)
		op := "do"
		if task.Done {
			op = "undo"
			m.list.Undo(checklist.Index(idx))
		} else {
			m.list.Do(checklist.Index(idx))
		}
		m.status = m.save(op, strconv.Itoa(idx), "Toggled task")
		m.cursor = clampCursor(m.cursor+1, n)
	case m.cfg.Keys.Delete:
		if n == 0 {
			return m, nil
		}
		task, _ := m.list.Task(m.cursor + 1)
		m.confirmDel = true
		m.pendingDel = m.cursor + 1
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", task.Text)
	case m.cfg.Keys.MoveUp:
		if m.cursor == 0 {
			return m, nil
		}
		m.status = m.move(m.cursor+1, m.cursor)
	case m.cfg.Keys.MoveDown:
		if m.cursor >= n-1 {
			return m, nil
		}
		m.status = m.move(m.cursor+1, m.cursor+2)
	}
	return m, nil
}

func (m *Model) move(from, to int) string {
	m.list.Move(from, to)
	m.cursor = to - 1
	return m.save("mv", fmt.Sprintf("%d %d", from, to), fmt.Sprintf("Moved task to %d", to))
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel == 0 {
			m.status = "Nothing to delete"
			break
		}
		m.list.Remove(checklist.Index(m.pendingDel))
		m.cursor = clampCursor(m.cursor, m.list.Len())
		m.status = m.save("rm", strconv.Itoa(m.pendingDel), "Deleted task")
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = 0
	return m, nil
}

// save commits the edit and returns the status line to show.
func (m Model) save(op, args, ok string) string {
	if m.commit == nil {
		return ok
	}
	if err := m.commit(op, args); err != nil {
		return fmt.Sprintf("save failed: %v", err)
	}
	return ok
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.list.Tasks() {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Done {
			checkbox = "[x]"
		}

		body := fmt.Sprintf("%s %3d %s %s", cursor, i+1, checkbox, t.Text)
		switch {
		case cursor == ">":
			body = cursorStyle.Render(body)
		case t.Done:
			body = doneStyle.Render(body)
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	toggle := k.Toggle
	if toggle == " " {
		toggle = "space"
	}
	return fmt.Sprintf("%s/%s move • %s/%s reorder • %s add • %s toggle • %s delete • %s quit",
		k.Up, k.Down, k.MoveUp, k.MoveDown, k.Add, toggle, k.Delete, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
