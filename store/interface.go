package store

import (
	"github.com/spf13/afero"

	"github.com/fernhold/todoserve/models"
)

// Options configures a TodoStore.
type Options struct {
	// FilePath is the JSON storage file. Defaults to "todos.json".
	FilePath string
	// MaxTodos caps the record count; adds beyond it fail. Defaults to 1000.
	MaxTodos int
	// Fs is the filesystem the store persists to. Defaults to the OS
	// filesystem; tests inject afero.NewMemMapFs or failing wrappers.
	Fs afero.Fs
}

// TodoUpdate carries the fields an update provides. Nil means "leave alone".
type TodoUpdate struct {
	Title       *string
	Description *string
	Priority    *models.TodoPriority
}

// Empty reports whether the update changes nothing.
func (u TodoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil
}

// TodoStore is the contract for todo persistence. The in-memory collection is
// the single source of truth for the process lifetime; every mutating method
// persists the full collection to disk before returning. Lookups that miss
// report not-found as a value, never as an error.
type TodoStore interface {
	// Initialize configures the store and loads the persisted collection.
	// Missing or unreadable files yield an empty store, not an error.
	Initialize(opts Options) error

	// CreateTodo assigns the next ID and timestamps, appends the record and
	// persists. Fails with *types.CapacityError when the store is full.
	CreateTodo(todo models.Todo) (models.Todo, error)

	// GetTodo retrieves a todo by ID.
	GetTodo(id int) (models.Todo, bool)

	// UpdateTodo applies the provided fields and persists. An empty update
	// returns the current record without touching disk.
	UpdateTodo(id int, upd TodoUpdate) (models.Todo, bool, error)

	// CompleteTodo transitions a pending todo to completed, setting
	// completed_at. Completing an already-completed todo is a no-op.
	CompleteTodo(id int) (models.Todo, bool, error)

	// ReopenTodo transitions a completed todo back to pending, clearing
	// completed_at. Reopening an already-pending todo is a no-op.
	ReopenTodo(id int) (models.Todo, bool, error)

	// DeleteTodo removes a todo and persists.
	DeleteTodo(id int) (bool, error)

	// ClearCompleted removes all completed todos in one batch with a single
	// persist, and reports how many were removed.
	ClearCompleted() (int, error)

	// ListTodos returns the todos matching filterFn (all when nil), sorted
	// by priority high to low with creation time as the ascending tie-break.
	ListTodos(filterFn func(models.Todo) bool) []models.Todo

	// Save persists the current collection. Mutating methods call it
	// implicitly; it is exposed for startup checks and tests.
	Save() error

	// EnsureStorageDir creates the storage file's directory if needed.
	EnsureStorageDir() error

	// FilePath reports the storage file path.
	FilePath() string

	// Close releases any resources held by the store.
	Close() error
}
