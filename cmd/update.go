/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [task_id]",
	Short: "Update fields of an existing task",
	Long: `Update one or more fields of a task. Fields that are not given keep their value.

Examples:
  tasks update 3 --title "Buy oat milk"
  tasks update 3 --due-date 2026-01-31 --priority high`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updateCategory    string
	updateDueDate     string
	updatePriority    string
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVar(&updateDueDate, "due-date", "", "new due date")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority: 1|2|3 or high|medium|low")
}

// buildPatch collects the update flags into a patch.
func buildPatch() (models.TaskPatch, error) {
	var patch models.TaskPatch
	set := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	patch.Title = set(updateTitle)
	patch.Description = set(updateDescription)
	patch.Category = set(updateCategory)
	patch.DueDate = set(updateDueDate)
	if updatePriority != "" {
		p, err := models.ParsePriority(updatePriority)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Priority = &p
	}
	if patch.IsEmpty() {
		return models.TaskPatch{}, fmt.Errorf("%w: nothing to update, pass at least one of --title, --description, --category, --due-date or --priority", models.ErrValidation)
	}
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch, err := buildPatch()
	if err != nil {
		return err
	}
	return withStore(func(s *store.FileTaskStore) error {
		id, ok, err := resolveTaskArg(cmd, s, args, store.Filter{}, "Select task to update")
		if err != nil || !ok {
			return err
		}
		task, err := s.UpdateTask(id, patch)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), taskResponse{Status: "updated", Task: task})
		}
		say(cmd, "✓ Task %d updated: %s", task.ID, task.Title)
		return nil
	})
}
