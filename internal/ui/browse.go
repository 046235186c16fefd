package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasks/models"
)

// TaskCompleter marks tasks done from the browser.
type TaskCompleter interface {
	CompleteTask(id int) (models.Task, error)
}

// BrowseModel is an interactive task table.
type BrowseModel struct {
	table     table.Model
	tasks     []models.Task
	completer TaskCompleter
	detail    bool
	status    string
	width     int
}

var browseColumns = []table.Column{
	{Title: "ID", Width: 4},
	{Title: "Title", Width: 30},
	{Title: "Category", Width: 14},
	{Title: "Due", Width: 10},
	{Title: "Priority", Width: 8},
	{Title: "Status", Width: 8},
}

// NewBrowseModel builds the browser over tasks.
func NewBrowseModel(tasks []models.Task, completer TaskCompleter) BrowseModel {
	t := table.New(
		table.WithColumns(browseColumns),
		table.WithRows(browseRows(tasks)),
		table.WithFocused(true),
		table.WithHeight(min(max(len(tasks), 3), 15)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(ColorPrimary).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(ColorPrimary)
	t.SetStyles(styles)

	return BrowseModel{table: t, tasks: tasks, completer: completer, width: 80}
}

func browseRows(tasks []models.Task) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, table.Row(TaskRow(t)))
	}
	return rows
}

// Tasks returns the tasks as currently shown.
func (m BrowseModel) Tasks() []models.Task {
	return m.tasks
}

func (m BrowseModel) selected() (int, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.tasks) {
		return 0, false
	}
	return i, true
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-6, 3))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			m.detail = !m.detail
			return m, nil
		case "c":
			return m.completeSelected(), nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowseModel) completeSelected() BrowseModel {
	i, ok := m.selected()
	if !ok || m.completer == nil {
		return m
	}
	task, err := m.completer.CompleteTask(m.tasks[i].ID)
	if err != nil {
		m.status = StyleError.Render(fmt.Sprintf("Could not complete task %d: %v", m.tasks[i].ID, err))
		return m
	}
	tasks := make([]models.Task, len(m.tasks))
	copy(tasks, m.tasks)
	tasks[i] = task
	m.tasks = tasks
	m.table.SetRows(browseRows(m.tasks))
	m.status = StyleSuccess.Render(fmt.Sprintf("Task %d completed.", task.ID))
	return m
}

func (m BrowseModel) View() string {
	var sb strings.Builder
	sb.WriteString(StyleHeader.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))) + "\n")
	sb.WriteString(m.table.View() + "\n")
	if i, ok := m.selected(); ok && m.detail {
		sb.WriteString(RenderTaskDetail(m.tasks[i], m.width, true) + "\n")
	}
	if m.status != "" {
		sb.WriteString(m.status + "\n")
	}
	sb.WriteString(StyleSubtle.Render("↑/↓ move • enter details • c complete • q quit"))
	return sb.String()
}

// RunBrowser starts the interactive browser and returns the final task list.
func RunBrowser(tasks []models.Task, completer TaskCompleter, opts ...tea.ProgramOption) ([]models.Task, error) {
	final, err := tea.NewProgram(NewBrowseModel(tasks, completer), opts...).Run()
	if err != nil {
		return nil, err
	}
	return final.(BrowseModel).Tasks(), nil
}
