package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical due date layout, DD.MM.YYYY.
const DateLayout = "02.01.2006"

const dayFirstDashLayout = "02-01-2006"

// NormalizeDate parses a human date and returns it in DateLayout.
// The canonical layout is tried first, so an already normalized date maps to itself.
// Ambiguous numeric input such as 05/06/2003 is read month first; input that
// only makes sense day first, like 28/12/2003, is read day first.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range []string{DateLayout, dayFirstDashLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC, dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.Format(DateLayout), nil
}

// DueTime returns the parsed due date of t.
func (t Task) DueTime() (time.Time, error) {
	return time.Parse(DateLayout, t.DueDate)
}
