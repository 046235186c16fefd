package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephgoksu/tasks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTasks(t *testing.T, cfg string) {
	t.Helper()
	mustRunCLI(t, cfg, "add", "Write report", "Quarterly numbers", "Work", "01.02.2030", "1")
	mustRunCLI(t, cfg, "add", "Buy milk", "2 liters", "Home", "02.02.2030")
	mustRunCLI(t, cfg, "add", "Review budget", "With finance", "Work/Finance", "03.02.2030", "2")
}

func listTitles(t *testing.T, cfg string, args ...string) []string {
	t.Helper()
	out := mustRunCLI(t, cfg, append([]string{"--json", "list"}, args...)...)
	tasks := decodeJSON[[]models.Task](t, out)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

func TestListCmd_Empty(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	out := mustRunCLI(t, cfg, "list")
	assert.Contains(t, out, "No tasks found.")
}

func TestListCmd_Table(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)

	out := mustRunCLI(t, cfg, "list")
	for _, want := range []string{"ID", "Title", "Write report", "Buy milk", "High", "Low", "○ open"} {
		assert.Contains(t, out, want)
	}
}

func TestListCmd_Filters(t *testing.T) {
	_, cfg := setupCLI(t, "json")
	seedTasks(t, cfg)
	mustRunCLI(t, cfg, "complete", "2")

	assert.Equal(t, []string{"Write report", "Buy milk", "Review budget"}, listTitles(t, cfg))
	assert.Equal(t, []string{"Write report", "Review budget"}, listTitles(t, cfg, "--categories", "work"))
	assert.Equal(t, []string{"Buy milk"}, listTitles(t, cfg, "--keywords", "MILK"))
	assert.Equal(t, []string{"Write report", "Buy milk"}, listTitles(t, cfg, "--keywords", "report,milk"))
	assert.Equal(t, []string{"Buy milk"}, listTitles(t, cfg, "--status", "done"))
	assert.Equal(t, []string{"Write report", "Review budget"}, listTitles(t, cfg, "--status", "false"))
	assert.Equal(t, []string{"Review budget"}, listTitles(t, cfg, "--categories", "finance", "--status", "open"))
	assert.Empty(t, listTitles(t, cfg, "--keywords", "holiday"))
}

func TestListCmd_InvalidStatus(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	_, err := runCLI(t, cfg, "list", "--status", "maybe")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want *bool
	}{
		{"", nil},
		{"done", boolPtr(true)},
		{"Completed", boolPtr(true)},
		{"open", boolPtr(false)},
		{"true", boolPtr(true)},
		{"0", boolPtr(false)},
	}
	for _, tt := range tests {
		got, err := parseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// The watcher registers asynchronously, so keep writing until a change is seen.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("[]"), 0o644)
		select {
		case <-changed:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}
