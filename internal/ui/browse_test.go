package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/tasks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls []int
	err   error
}

func (f *fakeCompleter) CompleteTask(id int) (models.Task, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return models.Task{}, f.err
	}
	for _, t := range sampleTasks {
		if t.ID == id {
			t.Status = true
			return t, nil
		}
	}
	return models.Task{}, errors.New("missing")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_CompleteSelected(t *testing.T) {
	fc := &fakeCompleter{}
	m := NewBrowseModel(sampleTasks, fc)

	next, _ := m.Update(keyRunes("c"))
	bm := next.(BrowseModel)

	require.Equal(t, []int{1}, fc.calls)
	assert.True(t, bm.Tasks()[0].Status)
	assert.False(t, sampleTasks[0].Status, "input slice must not be modified")
	assert.Contains(t, bm.View(), "Task 1 completed.")
}

func TestBrowseModel_CompleteError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("disk full")}
	m := NewBrowseModel(sampleTasks, fc)

	next, _ := m.Update(keyRunes("c"))
	bm := next.(BrowseModel)

	assert.False(t, bm.Tasks()[0].Status)
	assert.Contains(t, bm.View(), "disk full")
}

func TestBrowseModel_MoveAndDetail(t *testing.T) {
	m := NewBrowseModel(sampleTasks, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bm := next.(BrowseModel)

	assert.Contains(t, bm.View(), "#2 Ship release")

	next, cmd := bm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.NotContains(t, next.View(), "#2 Ship release")
}

func TestBrowseModel_Quit(t *testing.T) {
	m := NewBrowseModel(sampleTasks, nil)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModel_Empty(t *testing.T) {
	m := NewBrowseModel(nil, &fakeCompleter{})
	next, _ := m.Update(keyRunes("c"))
	assert.Contains(t, next.View(), "Tasks (0)")
}
