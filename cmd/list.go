/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/tasks/internal/ui"
	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, optionally filtered",
	Long: `List tasks in the order they were added.

Filters combine with AND; within a filter any value may match.
  --keywords    whole words of the title, case-insensitive
  --categories  part of the category, case-insensitive
  --status      done|open (or true|false)

Examples:
  tasks list
  tasks list --keywords milk,bread
  tasks list --categories work --status open
  tasks list --watch`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listKeywords   []string
	listCategories []string
	listStatus     string
	listWatch      bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceVarP(&listKeywords, "keywords", "k", nil, "match any of these title words")
	listCmd.Flags().StringSliceVar(&listCategories, "categories", nil, "match any of these category substrings")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "done|open")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "re-render when the data file changes")
}

// parseStatus turns the --status flag into a tri-state filter.
func parseStatus(raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "done", "completed":
		done := true
		return &done, nil
	case "open", "pending", "todo":
		done := false
		return &done, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: status must be done or open, got %q", models.ErrValidation, raw)
	}
	return &b, nil
}

func runList(cmd *cobra.Command, args []string) error {
	status, err := parseStatus(listStatus)
	if err != nil {
		return err
	}
	filter := store.Filter{Keywords: listKeywords, Categories: listCategories, Status: status}

	return withStore(func(s *store.FileTaskStore) error {
		render := func() error {
			tasks, err := s.QueryTasks(filter)
			if err != nil {
				return err
			}
			return renderTasks(cmd.OutOrStdout(), tasks)
		}
		if err := render(); err != nil {
			return err
		}
		if !listWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		say(cmd, "Watching %s (Ctrl+C to stop)", s.FilePath())
		return watchFile(ctx, s.FilePath(), func() {
			if err := render(); err != nil {
				LogError("failed to refresh task list", err)
			}
		})
	})
}

func renderTasks(w io.Writer, tasks []models.Task) error {
	if isJSON() {
		return printJSON(w, tasks)
	}
	width := 0
	if ui.IsTerminal(os.Stdout) {
		width = max(ui.TerminalWidth(os.Stdout, 100)/3, 12)
	}
	_, err := fmt.Fprint(w, ui.RenderTaskList(tasks, width))
	return err
}

// watchFile calls onChange whenever path is written or replaced, until ctx is done.
// The parent directory is watched since saves replace the file by rename.
func watchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				appLog.Debug("data file changed", "op", event.Op.String())
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			LogError("watch error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
