package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/viper"
)

// errDoctorFailed is returned by doctor when the data file has problems.
var errDoctorFailed = errors.New("data file has problems")

// userMessage maps an error to the short message printed without --verbose.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Error: task not found."
	case errors.Is(err, models.ErrInvalidPriority):
		return "Error: priority must be 1 (high), 2 (medium) or 3 (low)."
	case errors.Is(err, models.ErrInvalidDate):
		return fmt.Sprintf("Error: %v. Use a date such as 31.12.2025 or 2025-12-31.", err)
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, store.ErrInvalidConfig),
		errors.Is(err, models.ErrInvalidTaskData):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, errDoctorFailed):
		return "Error: the data file has problems, see the report above."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// PrintError prints an error message without exiting, allowing for recovery.
// In verbose mode the full technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error at debug level; it is only visible with --verbose.
func LogError(msg string, err error) {
	appLog.Debug(msg, "err", err)
}
