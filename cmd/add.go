/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasks/internal/config"
	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title> <description> <category> <due_date> [priority]",
	Short: "Add a new task",
	Long: `Add a new task to the store.

The due date accepts DD.MM.YYYY and most common formats (2025-12-31, Dec 31 2025, ...)
and is stored as DD.MM.YYYY. Priority is 1 (high), 2 (medium) or 3 (low), or its name;
it defaults to 3.

Examples:
  tasks add "Buy milk" "2 liters" Home 2025-12-31
  tasks add "Ship release" "Tag and publish v1.0" Work 31.12.2025 1
  tasks add "Renew passport" "Book an appointment" Admin "Jan 15 2026" --priority high`,
	Args: cobra.RangeArgs(4, 5),
	RunE: runAdd,
}

var addPriority string

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority: 1|2|3 or high|medium|low (default 3)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority := models.Priority(config.DefaultPriority)
	raw := addPriority
	if len(args) == 5 {
		if raw != "" && raw != args[4] {
			return fmt.Errorf("%w: priority given both as argument and flag", models.ErrValidation)
		}
		raw = args[4]
	}
	if raw != "" {
		p, err := models.ParsePriority(raw)
		if err != nil {
			return err
		}
		priority = p
	}

	in := models.TaskInput{
		Title:       args[0],
		Description: args[1],
		Category:    args[2],
		DueDate:     args[3],
		Priority:    priority,
	}

	return withStore(func(s *store.FileTaskStore) error {
		task, err := s.AddTask(in)
		if err != nil {
			return err
		}
		appLog.Debug("task added", "id", task.ID, "file", s.FilePath())

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), taskResponse{Status: "created", Task: task})
		}
		say(cmd, "✓ Task %d added: %s (due %s)", task.ID, task.Title, task.DueDate)
		return nil
	})
}
