/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/josephgoksu/tasks/internal/config"
	"github.com/josephgoksu/tasks/internal/logger"
	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "1.0.0"
	// appLog is the command-scoped logger, rebuilt before every command runs.
	appLog = logger.Discard()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasks",
	Short: "tasks is a personal task tracker for the command line.",
	Long: `tasks keeps a list of tasks with a title, description, category,
due date, priority and completion status in a local JSON, YAML or TOML file.

Add, list, update, complete and delete tasks from the command line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := InitConfig(); err != nil {
			return err
		}
		cfg := GetConfig()
		appLog = logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Verbose)
		logger.SetBasePath(cfg.Project.RootDir)
		logger.SetCommand(cmd.CommandPath(), args)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.tasks/.tasks.yaml, ./.tasks.yaml or $HOME/.tasks.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-essential output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// GetStore opens the task store configured in GlobalAppConfig.
func GetStore() (*store.FileTaskStore, error) {
	paths := config.ResolveDataPaths(GlobalAppConfig)
	s, err := store.Open(store.Config{
		DataFile:    paths.DataFile,
		OptionsFile: paths.OptionsFile,
		Format:      paths.Format,
	}, store.WithLogger(appLog))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", paths.DataFile, err)
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store.
func withStore(fn func(s *store.FileTaskStore) error) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			LogError("failed to close task store", err)
		}
	}()
	return fn(s)
}

// parseTaskID parses a positional task identifier.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", models.ErrValidation, arg)
	}
	return id, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
func selectTaskInteractive(taskStore store.TaskStore, filter store.Filter, label string) (models.Task, error) {
	tasks, err := taskStore.QueryTasks(filter)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Due: {{ .DueDate }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Due: {{ .DueDate }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Category:\t" | faint }} {{ .Category }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(task.Title), input) || strconv.Itoa(task.ID) == input
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	return tasks[i], nil
}

// resolveTaskArg returns the id given as the first argument, or prompts for one.
func resolveTaskArg(cmd *cobra.Command, s store.TaskStore, args []string, filter store.Filter, label string) (int, bool, error) {
	if len(args) > 0 {
		id, err := parseTaskID(args[0])
		return id, err == nil, err
	}
	if isJSON() {
		return 0, false, fmt.Errorf("%w: a task id is required with --json", models.ErrValidation)
	}
	task, err := selectTaskInteractive(s, filter, label)
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled.")
		return 0, false, nil
	case errors.Is(err, ErrNoTasksFound):
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks available.")
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("task selection failed: %w", err)
	}
	appLog.Debug("task selected", "id", task.ID)
	return task.ID, true, nil
}
