/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:     "complete [task_id]",
	Aliases: []string{"done", "finish"},
	Short:   "Mark a task as completed",
	Long: `Mark a task as completed. Completing a task twice is not an error.

If no task_id is provided, an interactive list of open tasks is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.FileTaskStore) error {
			open := false
			id, ok, err := resolveTaskArg(cmd, s, args, store.Filter{Status: &open}, "Select task to mark as done")
			if err != nil || !ok {
				return err
			}
			task, err := s.CompleteTask(id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), taskResponse{Status: "completed", Task: task})
			}
			say(cmd, "✓ Task %d marked as done: %s", task.ID, task.Title)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
