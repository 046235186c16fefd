package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Task represents a unit of work.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DueDate     string   `json:"due_date"` // always DateLayout
	Priority    Priority `json:"priority"`
	Status      bool     `json:"status"`
}

// TaskInput carries the fields needed to create a task.
type TaskInput struct {
	Title       string   `validate:"notblank"`
	Description string   `validate:"notblank"`
	Category    string   `validate:"notblank"`
	DueDate     string   `validate:"notblank"`
	Priority    Priority `validate:"required"`
	Status      bool
}

// TaskPatch is a partial update. Nil and empty values leave the field untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	DueDate     *string
	Priority    *Priority
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return isBlank(p.Title) && isBlank(p.Description) && isBlank(p.Category) &&
		isBlank(p.DueDate) && (p.Priority == nil || *p.Priority == 0)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// Field keys of the serialized mapping.
const (
	KeyID          = "id"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyCategory    = "category"
	KeyDueDate     = "due_date"
	KeyPriority    = "priority"
	KeyStatus      = "status"
)

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validator: %v", err))
	}
}

// ValidateStruct performs validation on any struct that has validation tags.
// Failures are wrapped in ErrValidation.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("field '%s' must not be empty", strings.ToLower(e.Field())))
		default:
			messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", strings.ToLower(e.Field()), e.Tag(), e.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

// NewTask builds a task from validated input and normalizes its due date.
func NewTask(id int, in TaskInput) (Task, error) {
	if err := ValidateStruct(in); err != nil {
		return Task{}, err
	}
	if !in.Priority.IsValid() {
		return Task{}, fmt.Errorf("%w: got %d", ErrInvalidPriority, int(in.Priority))
	}
	due, err := NormalizeDate(in.DueDate)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		DueDate:     due,
		Priority:    in.Priority,
		Status:      in.Status,
	}, nil
}

// Complete marks the task as done.
func (t *Task) Complete() {
	t.Status = true
}

// Update applies the non-empty fields of p. On error t is left unchanged.
func (t *Task) Update(p TaskPatch) error {
	next := *t
	if !isBlank(p.Title) {
		next.Title = *p.Title
	}
	if !isBlank(p.Description) {
		next.Description = *p.Description
	}
	if !isBlank(p.Category) {
		next.Category = *p.Category
	}
	if !isBlank(p.DueDate) {
		due, err := NormalizeDate(*p.DueDate)
		if err != nil {
			return err
		}
		next.DueDate = due
	}
	if p.Priority != nil && *p.Priority != 0 {
		if !p.Priority.IsValid() {
			return fmt.Errorf("%w: got %d", ErrInvalidPriority, int(*p.Priority))
		}
		next.Priority = *p.Priority
	}
	*t = next
	return nil
}

// ToMap serializes the task into a plain mapping. Priority is stored as its integer value.
func (t Task) ToMap() map[string]any {
	return map[string]any{
		KeyID:          t.ID,
		KeyTitle:       t.Title,
		KeyDescription: t.Description,
		KeyCategory:    t.Category,
		KeyDueDate:     t.DueDate,
		KeyPriority:    int(t.Priority),
		KeyStatus:      t.Status,
	}
}

// TaskFromMap reconstructs a task from a mapping produced by ToMap or by a decoder.
func TaskFromMap(m map[string]any) (Task, error) {
	id, err := intField(m, KeyID)
	if err != nil {
		return Task{}, err
	}
	title, err := stringField(m, KeyTitle)
	if err != nil {
		return Task{}, err
	}
	description, err := stringField(m, KeyDescription)
	if err != nil {
		return Task{}, err
	}
	category, err := stringField(m, KeyCategory)
	if err != nil {
		return Task{}, err
	}
	rawDue, err := stringField(m, KeyDueDate)
	if err != nil {
		return Task{}, err
	}
	rawPriority, err := intField(m, KeyPriority)
	if err != nil {
		return Task{}, err
	}
	status, err := boolField(m, KeyStatus)
	if err != nil {
		return Task{}, err
	}

	priority, err := PriorityFromInt(rawPriority)
	if err != nil {
		return Task{}, err
	}
	due, err := NormalizeDate(rawDue)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		DueDate:     due,
		Priority:    priority,
		Status:      status,
	}, nil
}

func lookup(m map[string]any, key string) (any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: missing key %q", ErrInvalidTaskData, key)
	}
	return v, nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, err := lookup(m, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q must be a string, got %T", ErrInvalidTaskData, key, v)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	v, err := lookup(m, key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: key %q must be a boolean, got %T", ErrInvalidTaskData, key, v)
	}
	return b, nil
}

// intField accepts the integer representations produced by the JSON, YAML and TOML decoders.
func intField(m map[string]any, key string) (int, error) {
	v, err := lookup(m, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case json.Number:
		if i, convErr := n.Int64(); convErr == nil {
			return int(i), nil
		}
	}
	return 0, fmt.Errorf("%w: key %q must be an integer, got %v", ErrInvalidTaskData, key, v)
}
