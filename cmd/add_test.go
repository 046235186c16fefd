package cmd

import (
	"testing"

	"github.com/josephgoksu/tasks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand_Structure(t *testing.T) {
	require.NotNil(t, addCmd)
	assert.Equal(t, "add <title> <description> <category> <due_date> [priority]", addCmd.Use)
	assert.NotNil(t, addCmd.Flags().Lookup("priority"))
}

func TestAddCmd_NormalizesDateAndDefaults(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	out := mustRunCLI(t, cfg, "--json", "add", "Task 1", "Description 1", "Category 1", "2003-12-28", "3")
	resp := decodeJSON[taskResponse](t, out)

	assert.Equal(t, "created", resp.Status)
	assert.Equal(t, 1, resp.Task.ID)
	assert.Equal(t, "28.12.2003", resp.Task.DueDate)
	assert.Equal(t, models.PriorityLow, resp.Task.Priority)
	assert.False(t, resp.Task.Status)
}

func TestAddCmd_AcceptsDayFirstDates(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	for _, due := range []string{"28/12/2003", "28-12-2003"} {
		out := mustRunCLI(t, cfg, "--json", "add", "Task", "Description", "Home", due)
		resp := decodeJSON[taskResponse](t, out)
		assert.Equal(t, "28.12.2003", resp.Task.DueDate, due)
	}

	_, err := runCLI(t, cfg, "add", "   ", "Description", "Home", "28.12.2003")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAddCmd_DefaultPriorityIsLow(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	out := mustRunCLI(t, cfg, "--json", "add", "Buy milk", "2 liters", "Home", "01.01.2030")
	resp := decodeJSON[taskResponse](t, out)
	assert.Equal(t, models.PriorityLow, resp.Task.Priority)
}

func TestAddCmd_PriorityFlag(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	out := mustRunCLI(t, cfg, "--json", "add", "Ship", "release", "Work", "01.01.2030", "--priority", "high")
	resp := decodeJSON[taskResponse](t, out)
	assert.Equal(t, models.PriorityHigh, resp.Task.Priority)

	_, err := runCLI(t, cfg, "add", "Ship", "release", "Work", "01.01.2030", "1", "--priority", "low")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAddCmd_HumanOutput(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	out := mustRunCLI(t, cfg, "add", "Buy milk", "2 liters", "Home", "2030-01-01")
	assert.Contains(t, out, "Task 1 added: Buy milk (due 01.01.2030)")

	out = mustRunCLI(t, cfg, "--quiet", "add", "Buy bread", "1 loaf", "Home", "2030-01-01")
	assert.Empty(t, out)
}

func TestAddCmd_Errors(t *testing.T) {
	_, cfg := setupCLI(t, "json")

	_, err := runCLI(t, cfg, "add", "Task", "Desc", "Cat", "01.01.2030", "4")
	assert.ErrorIs(t, err, models.ErrInvalidPriority)

	_, err = runCLI(t, cfg, "add", "Task", "Desc", "Cat", "not a date")
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	_, err = runCLI(t, cfg, "add", "", "Desc", "Cat", "01.01.2030")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = runCLI(t, cfg, "add", "only", "three", "args")
	assert.Error(t, err)

	out := mustRunCLI(t, cfg, "--json", "list")
	assert.Empty(t, decodeJSON[[]models.Task](t, out))
}
