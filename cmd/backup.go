/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Copy the task data file to a backup location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.FileTaskStore) error {
			if err := s.Backup(args[0]); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), fileResponse{Status: "backed_up", Path: args[0]})
			}
			say(cmd, "✓ Backed up %s to %s", s.FilePath(), args[0])
			return nil
		})
	},
}

var restoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Replace all tasks with the contents of a backup",
	Long: `Replace all tasks with the tasks in a backup file written by 'tasks backup'.
The backup is validated first; an invalid backup leaves the current tasks untouched.
The id counter is kept, so ids are never reused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.FileTaskStore) error {
			ok, err := confirmOrAbort(cmd, fmt.Sprintf("Replace all tasks with %s", args[0]), restoreYes)
			if err != nil || !ok {
				return err
			}
			if err := s.Restore(args[0]); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), fileResponse{Status: "restored", Path: args[0]})
			}
			say(cmd, "✓ Restored tasks from %s", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}
