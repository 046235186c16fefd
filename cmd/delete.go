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

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task, or every task in a category",
	Long: `Delete a task by its ID, or every task whose category is exactly --category.
If neither is provided, an interactive list is shown.
A confirmation prompt is displayed unless --yes is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var (
	deleteCategory string
	deleteYes      bool
)

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVar(&deleteCategory, "category", "", "delete every task in this category (exact match)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && deleteCategory != "" {
		return fmt.Errorf("%w: provide either a task id or --category, not both", models.ErrValidation)
	}

	return withStore(func(s *store.FileTaskStore) error {
		sel := store.Selector{Category: deleteCategory}
		label := fmt.Sprintf("Delete all tasks in category '%s'", deleteCategory)

		if deleteCategory == "" {
			id, ok, err := resolveTaskArg(cmd, s, args, store.Filter{}, "Select task to delete")
			if err != nil || !ok {
				return err
			}
			task, err := s.GetTask(id)
			if err != nil {
				return err
			}
			sel = store.Selector{ID: id}
			label = fmt.Sprintf("Delete task '%s' (ID: %d)", task.Title, task.ID)
		}

		ok, err := confirmOrAbort(cmd, label, deleteYes)
		if err != nil || !ok {
			return err
		}

		deleted, err := s.DeleteTasks(sel)
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), deletedResponse{Status: "deleted", ID: sel.ID, Category: sel.Category, Deleted: deleted})
		}
		if sel.ID != 0 {
			say(cmd, "✓ Task %d deleted.", sel.ID)
		} else {
			say(cmd, "✓ Deleted %d task(s) in category '%s'.", deleted, sel.Category)
		}
		return nil
	})
}
