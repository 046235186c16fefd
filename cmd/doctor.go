/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/tasks/internal/config"
	"github.com/josephgoksu/tasks/internal/ui"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the task data file for problems",
	Long: `Validate the configuration and the task data file.

Checks:
  • configuration file and resolved data paths
  • data file checksum
  • every task against the task schema
  • duplicate task ids

Exits with status 1 when a problem is found.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warn", "fail"
	Message string `json:"message"`
}

type doctorResponse struct {
	Checks []DoctorCheck `json:"checks"`
	Report store.Report  `json:"report"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	paths := config.ResolveDataPaths(GlobalAppConfig)
	s := store.NewFileTaskStore(store.WithLogger(appLog))
	defer func() { _ = s.Close() }()

	initErr := s.Initialize(store.Config{DataFile: paths.DataFile, OptionsFile: paths.OptionsFile, Format: paths.Format})
	if errors.Is(initErr, store.ErrInvalidConfig) {
		return initErr
	}

	report, err := s.Verify()
	if err != nil {
		return err
	}

	checks := doctorChecks(paths, report, initErr)
	failed := initErr != nil || !report.OK()

	if isJSON() {
		if err := printJSON(cmd.OutOrStdout(), doctorResponse{Checks: checks, Report: report}); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.StyleHeader.Render("tasks doctor"))
		fmt.Fprintln(out, ui.StyleSubtle.Render(strings.Repeat("━", 50)))
		for _, c := range checks {
			fmt.Fprintf(out, "%s %-10s %s\n", checkIcon(c.Status), c.Name, c.Message)
		}
		for _, p := range report.Problems {
			fmt.Fprintf(out, "   %s %s\n", ui.StyleSubtle.Render("•"), p)
		}
	}

	if failed {
		return errDoctorFailed
	}
	return nil
}

func doctorChecks(paths config.DataPaths, report store.Report, loadErr error) []DoctorCheck {
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		cfgFile = "none, using defaults"
	}
	checks := []DoctorCheck{
		{Name: "config", Status: "ok", Message: cfgFile},
	}
	if isVerbose() {
		checks = append(checks, DoctorCheck{Name: "options", Status: "ok", Message: paths.OptionsFile})
	}

	switch {
	case !report.Exists:
		checks = append(checks, DoctorCheck{Name: "data", Status: "warn", Message: paths.DataFile + " does not exist yet"})
	case loadErr != nil:
		checks = append(checks, DoctorCheck{Name: "data", Status: "fail", Message: loadErr.Error()})
	default:
		checks = append(checks, DoctorCheck{Name: "data", Status: "ok", Message: fmt.Sprintf("%s (%d tasks, %s)", paths.DataFile, report.TaskCount, paths.Format)})
	}

	switch report.Checksum {
	case store.ChecksumOK:
		checks = append(checks, DoctorCheck{Name: "checksum", Status: "ok", Message: "matches"})
	case store.ChecksumMismatch:
		checks = append(checks, DoctorCheck{Name: "checksum", Status: "fail", Message: "does not match, the file was changed outside tasks"})
	default:
		checks = append(checks, DoctorCheck{Name: "checksum", Status: "warn", Message: "missing, it is written on the next save"})
	}

	if report.Exists {
		status, msg := "ok", "all tasks valid"
		if len(report.Problems) > 0 {
			status, msg = "fail", fmt.Sprintf("%d problem(s)", len(report.Problems))
		}
		checks = append(checks, DoctorCheck{Name: "schema", Status: status, Message: msg})
	}
	return checks
}

func checkIcon(status string) string {
	switch status {
	case "ok":
		return ui.StyleSuccess.Render("✓")
	case "warn":
		return ui.StyleWarning.Render("!")
	default:
		return ui.StyleError.Render("✗")
	}
}
