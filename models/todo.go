package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TodoStatus represents the lifecycle state of a todo.
type TodoStatus string

const (
	StatusPending   TodoStatus = "pending"
	StatusCompleted TodoStatus = "completed"
)

// TodoPriority represents the priority levels of a todo.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

// Weight returns the sort weight of a priority. High sorts before medium,
// medium before low. Unknown values weigh the same as medium.
func (p TodoPriority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Todo is a single task record. The json tags are the on-disk contract:
// the storage file is a JSON array of these objects.
type Todo struct {
	ID          int          `json:"id" validate:"required,min=1"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Priority    TodoPriority `json:"priority" validate:"required,oneof=low medium high"`
	Status      TodoStatus   `json:"status" validate:"required,oneof=pending completed"`
	CreatedAt   time.Time    `json:"created_at" validate:"required"`
	UpdatedAt   time.Time    `json:"updated_at" validate:"required"`
	CompletedAt *time.Time   `json:"completed_at"` // non-nil iff Status is completed
}

// HasRequiredFields reports whether the record carries the two fields that
// make it structurally usable: an ID and a title. Records loaded from disk
// that fail this check are skipped; the health check counts them as corrupt.
func (t Todo) HasRequiredFields() bool {
	return t.ID > 0 && strings.TrimSpace(t.Title) != ""
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
