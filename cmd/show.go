/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/tasks/internal/ui"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [task_id]",
	Short: "Show details for a specific task",
	Long: `Displays all fields of a single task. The description is rendered as Markdown.

If no task_id is provided, an interactive menu is shown to select a task.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.FileTaskStore) error {
			id, ok, err := resolveTaskArg(cmd, s, args, store.Filter{}, "Select a task to view its details")
			if err != nil || !ok {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), task)
			}
			color := ui.IsTerminal(os.Stdout)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTaskDetail(task, ui.TerminalWidth(os.Stdout, 80), color))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
