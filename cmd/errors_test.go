package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/josephgoksu/tasks/models"
	"github.com/josephgoksu/tasks/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestPrintError(t *testing.T) {
	originalStderr := os.Stderr

	tests := []struct {
		name         string
		userMsg      string
		technicalErr error
		verbose      bool
		expectedOut  string
	}{
		{
			name:        "normal mode without error",
			userMsg:     "User friendly message",
			expectedOut: "User friendly message",
		},
		{
			name:         "verbose mode with error",
			userMsg:      "User friendly message",
			technicalErr: errors.New("technical details"),
			verbose:      true,
			expectedOut:  "Error: technical details",
		},
		{
			name:         "normal mode with technical error",
			userMsg:      "User friendly message",
			technicalErr: errors.New("technical details"),
			expectedOut:  "User friendly message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			r, w, _ := os.Pipe()
			os.Stderr = w

			PrintError(tt.userMsg, tt.technicalErr)

			_ = w.Close()
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r)
			output := strings.TrimSpace(buf.String())
			os.Stderr = originalStderr

			if !strings.Contains(output, tt.expectedOut) {
				t.Errorf("PrintError() output = %q, want to contain %q", output, tt.expectedOut)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: id 4", store.ErrNotFound), "Error: task not found."},
		{fmt.Errorf("wrapped: %w", models.ErrInvalidPriority), "priority must be 1 (high), 2 (medium) or 3 (low)"},
		{fmt.Errorf("%w: %q", models.ErrInvalidDate, "someday"), "Use a date such as"},
		{fmt.Errorf("%w: field 'title' must not be empty", models.ErrValidation), "field 'title' must not be empty"},
		{fmt.Errorf("%w: bad format", store.ErrInvalidConfig), "bad format"},
		{errDoctorFailed, "see the report above"},
		{errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		assert.Contains(t, userMessage(tt.err), tt.want)
	}
}
