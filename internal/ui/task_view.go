package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasks/models"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskHeaders are the columns of the task list.
var TaskHeaders = []string{"ID", "Title", "Category", "Due", "Priority", "Status"}

const priorityColumn = 4

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or fallback when it is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// PriorityLabel renders a priority as a title-cased word, e.g. "High".
func PriorityLabel(p models.Priority) string {
	return cases.Title(language.English).String(strings.ToLower(p.String()))
}

// StatusLabel renders completion status.
func StatusLabel(done bool) string {
	if done {
		return "✓ done"
	}
	return "○ open"
}

// TaskRow formats a task as table cells.
func TaskRow(t models.Task) []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Title,
		t.Category,
		t.DueDate,
		PriorityLabel(t.Priority),
		StatusLabel(t.Status),
	}
}

// RenderTaskList renders tasks as a table.
func RenderTaskList(tasks []models.Task, maxWidth int) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks found.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow(t))
	}
	table := &Table{
		Headers:  TaskHeaders,
		Rows:     rows,
		MaxWidth: maxWidth,
		Styles: func(row, col int) *lipgloss.Style {
			if col != priorityColumn {
				return nil
			}
			s := PriorityStyle(int(tasks[row].Priority))
			return &s
		},
	}
	return table.Render()
}

// RenderMarkdown renders md for the terminal, falling back to the raw text on error.
func RenderMarkdown(md string, width int, color bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "notty"
	if color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// RenderTaskDetail renders a single task as a bordered card.
func RenderTaskDetail(t models.Task, width int, color bool) string {
	field := func(label, value string) string {
		return StyleLabel.Render(label) + value
	}
	lines := []string{
		StyleHeader.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)),
		"",
		field("Category", t.Category),
		field("Due", t.DueDate),
		field("Priority", PriorityStyle(int(t.Priority)).Render(PriorityLabel(t.Priority))),
		field("Status", StatusLabel(t.Status)),
	}
	if desc := RenderMarkdown(t.Description, max(width-4, 20), color); desc != "" {
		lines = append(lines, "", desc)
	}
	return StyleCard.Render(strings.Join(lines, "\n"))
}
