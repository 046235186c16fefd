package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)

	task := decodeJSON[models.Task](t, mustRunCLI(t, cfg, "--json", "show", "2"))
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "02.02.2030", task.DueDate)

	out := mustRunCLI(t, cfg, "show", "1")
	assert.Contains(t, out, "#1 Write report")
	assert.Contains(t, out, "Quarterly numbers")

	_, err := runCLI(t, cfg, "show", "99")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = runCLI(t, cfg, "show", "abc")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCompleteCmd(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)

	out := mustRunCLI(t, cfg, "complete", "1")
	assert.Contains(t, out, "Task 1 marked as done")

	// Aliases, and completing twice is fine.
	resp := decodeJSON[taskResponse](t, mustRunCLI(t, cfg, "--json", "done", "1"))
	assert.True(t, resp.Task.Status)
	resp = decodeJSON[taskResponse](t, mustRunCLI(t, cfg, "--json", "finish", "2"))
	assert.True(t, resp.Task.Status)

	_, err := runCLI(t, cfg, "complete", "42")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = runCLI(t, cfg, "--json", "complete")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateCmd(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)

	resp := decodeJSON[taskResponse](t, mustRunCLI(t, cfg, "--json", "update", "2",
		"--title", "Buy oat milk", "--due-date", "2030-03-15", "--priority", "1"))
	assert.Equal(t, "Buy oat milk", resp.Task.Title)
	assert.Equal(t, "15.03.2030", resp.Task.DueDate)
	assert.Equal(t, models.PriorityHigh, resp.Task.Priority)
	assert.Equal(t, "2 liters", resp.Task.Description)
	assert.Equal(t, "Home", resp.Task.Category)

	_, err := runCLI(t, cfg, "update", "2")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = runCLI(t, cfg, "update", "2", "--priority", "9")
	assert.ErrorIs(t, err, models.ErrInvalidPriority)

	_, err = runCLI(t, cfg, "update", "2", "--title", "New", "--due-date", "someday")
	assert.ErrorIs(t, err, models.ErrInvalidDate)
	task := decodeJSON[models.Task](t, mustRunCLI(t, cfg, "--json", "show", "2"))
	assert.Equal(t, "Buy oat milk", task.Title, "failed update must not change the task")

	_, err = runCLI(t, cfg, "update", "99", "--title", "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCmd(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)
	mustRunCLI(t, cfg, "add", "Plan offsite", "Venue", "Work", "04.02.2030")

	out := mustRunCLI(t, cfg, "delete", "2", "--yes")
	assert.Contains(t, out, "Task 2 deleted.")

	resp := decodeJSON[deletedResponse](t, mustRunCLI(t, cfg, "--json", "delete", "--category", "Work"))
	assert.Equal(t, 2, resp.Deleted)
	assert.Equal(t, []string{"Review budget"}, listTitles(t, cfg))

	_, err := runCLI(t, cfg, "delete", "3", "--category", "Work", "--yes")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = runCLI(t, cfg, "delete", "99", "--yes")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleted ids are never handed out again.
	added := decodeJSON[taskResponse](t, mustRunCLI(t, cfg, "--json", "add", "New", "Desc", "Home", "01.01.2030"))
	assert.Equal(t, 5, added.Task.ID)
}

func TestBackupRestoreCmd(t *testing.T) {
	dir, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)
	backup := filepath.Join(dir, "backups", "tasks.json")

	mustRunCLI(t, cfg, "backup", backup)
	_, err := os.Stat(backup)
	require.NoError(t, err)

	mustRunCLI(t, cfg, "delete", "--category", "Work", "--yes")
	assert.Equal(t, []string{"Buy milk", "Review budget"}, listTitles(t, cfg))

	mustRunCLI(t, cfg, "restore", backup, "--yes")
	assert.Equal(t, []string{"Write report", "Buy milk", "Review budget"}, listTitles(t, cfg))

	_, err = runCLI(t, cfg, "restore", filepath.Join(dir, "missing.json"), "--yes")
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dir, cfg := setupCLI(t, format)
			seedTasks(t, cfg)
			mustRunCLI(t, cfg, "complete", "3")

			_, err := os.Stat(filepath.Join(dir, "tasks."+format))
			require.NoError(t, err)
			_, err = os.Stat(filepath.Join(dir, "options."+format))
			require.NoError(t, err)

			assert.Equal(t, []string{"Review budget"}, listTitles(t, cfg, "--status", "done"))
		})
	}
}
