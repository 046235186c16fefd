package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/josephgoksu/tasks/models"
	"golang.org/x/text/cases"
)

// Filter constrains QueryTasks. Empty fields impose no constraint.
type Filter struct {
	// Keywords match whole words of the title, case-insensitively.
	Keywords []string
	// Categories match as case-insensitive substrings of the category.
	Categories []string
	// Status, when set, must equal the task status.
	Status *bool
}

// Selector picks the tasks removed by DeleteTasks. Exactly one field must be set.
type Selector struct {
	ID       int
	Category string
}

func (s Selector) validate() error {
	switch {
	case s.ID < 0:
		return fmt.Errorf("%w: task id must be positive", models.ErrValidation)
	case s.ID == 0 && s.Category == "":
		return fmt.Errorf("%w: task id or category must be provided", models.ErrValidation)
	case s.ID != 0 && s.Category != "":
		return fmt.Errorf("%w: provide either a task id or a category, not both", models.ErrValidation)
	}
	return nil
}

func (s Selector) matches(t models.Task) bool {
	if s.ID != 0 {
		return t.ID == s.ID
	}
	return t.Category == s.Category
}

// matcher is a compiled Filter.
type matcher struct {
	fold       cases.Caser
	keywords   []string
	categories []string
	status     *bool
}

func newMatcher(f Filter) *matcher {
	m := &matcher{fold: cases.Fold(), status: f.Status}
	m.keywords = m.foldAll(f.Keywords)
	m.categories = m.foldAll(f.Categories)
	return m
}

// foldAll case-folds the terms and drops blank ones.
func (m *matcher) foldAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		out = append(out, m.fold.String(term))
	}
	return out
}

func (m *matcher) match(t models.Task) bool {
	if m.status != nil && t.Status != *m.status {
		return false
	}
	if len(m.keywords) > 0 {
		words := strings.Fields(m.fold.String(t.Title))
		if !slices.ContainsFunc(m.keywords, func(kw string) bool { return slices.Contains(words, kw) }) {
			return false
		}
	}
	if len(m.categories) > 0 {
		category := m.fold.String(t.Category)
		if !slices.ContainsFunc(m.categories, func(c string) bool { return strings.Contains(category, c) }) {
			return false
		}
	}
	return true
}

func filterTasks(tasks []models.Task, f Filter) []models.Task {
	m := newMatcher(f)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if m.match(t) {
			out = append(out, t)
		}
	}
	return out
}
