/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"os"

	"github.com/josephgoksu/tasks/internal/ui"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tasks interactively",
	Long:  `Opens an interactive table of tasks. Use the arrow keys to move, enter for details, c to complete and q to quit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSON() || !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
			return errors.New("browse needs an interactive terminal, use 'tasks list' instead")
		}
		return withStore(func(s *store.FileTaskStore) error {
			tasks, err := s.ListTasks()
			if err != nil {
				return err
			}
			_, err = ui.RunBrowser(tasks, s)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
