package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/fernhold/todoserve/models"
	"github.com/fernhold/todoserve/types"
)

const (
	defaultDataFile = "todos.json"
	defaultMaxTodos = 1000
	backupSuffix    = ".bak"
)

// FileTodoStore implements TodoStore with an in-memory ordered collection
// backed by a single JSON file. The collection is loaded once at Initialize
// and is the source of truth afterwards; the file is only ever rewritten
// whole, never read back mid-session.
//
// One mutex serializes "mutate collection + persist" as a critical section,
// since the MCP transport may dispatch tool calls concurrently.
type FileTodoStore struct {
	mu       sync.Mutex
	fsys     afero.Fs
	filePath string
	maxTodos int
	todos    []models.Todo
}

// NewFileTodoStore creates a new instance of FileTodoStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTodoStore() *FileTodoStore {
	return &FileTodoStore{todos: []models.Todo{}}
}

// Initialize configures the store and loads any persisted todos. A missing
// file is a normal first run. Malformed content is logged and discarded
// rather than failing startup; availability wins over strictness here.
func (s *FileTodoStore) Initialize(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filePath = opts.FilePath
	if s.filePath == "" {
		s.filePath = defaultDataFile
	}
	s.maxTodos = opts.MaxTodos
	if s.maxTodos <= 0 {
		s.maxTodos = defaultMaxTodos
	}
	s.fsys = opts.Fs
	if s.fsys == nil {
		s.fsys = afero.NewOsFs()
	}

	if dir := filepath.Dir(s.filePath); dir != "." && dir != "" {
		if err := s.fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.loadLocked()
	return nil
}

// loadLocked reads the collection from the storage file. It deliberately
// never fails: a missing file means first run, anything unreadable or
// malformed is logged and treated as empty. Only the primary file is read;
// a stale .bak left behind by a crash is ignored.
func (s *FileTodoStore) loadLocked() {
	s.todos = []models.Todo{}

	data, err := afero.ReadFile(s.fsys, s.filePath)
	if err != nil {
		if isNotExist(err) {
			log.Printf("no existing todos file at %s, starting fresh", s.filePath)
			return
		}
		log.Printf("error loading todos from %s: %v", s.filePath, err)
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("invalid data format in %s, starting fresh: %v", s.filePath, err)
		return
	}

	for _, item := range items {
		var todo models.Todo
		if err := json.Unmarshal(item, &todo); err != nil || !todo.HasRequiredFields() {
			log.Printf("skipping invalid todo item: %s", string(item))
			continue
		}
		s.todos = append(s.todos, todo)
	}
	log.Printf("loaded %d todos from %s", len(s.todos), s.filePath)
}

// saveLocked writes the whole collection to the storage file:
//
//  1. rename the live file to its .bak sibling (clobbering any older .bak)
//  2. write the full pretty-printed array
//  3. on success remove the .bak; on failure restore it best-effort
//
// The sequence is not atomic across steps: a crash between 1 and 2 leaves
// only the .bak, which loadLocked does not read. The caller-visible contract
// is the backup-then-restore-on-failure behavior, which tests pin down.
//
// In-memory state is NOT rolled back on failure; the store keeps the
// attempted mutation and diverges from disk until the next successful save.
func (s *FileTodoStore) saveLocked() error {
	data, err := json.MarshalIndent(s.todos, "", "  ")
	if err != nil {
		return &types.PersistenceError{Path: s.filePath, Err: err}
	}

	backupPath := s.filePath + backupSuffix
	if s.existsLocked(s.filePath) {
		if err := s.fsys.Rename(s.filePath, backupPath); err != nil {
			return &types.PersistenceError{Path: s.filePath, Err: err}
		}
	}

	if err := afero.WriteFile(s.fsys, s.filePath, data, 0o644); err != nil {
		if s.existsLocked(backupPath) {
			_ = s.fsys.Rename(backupPath, s.filePath)
		}
		return &types.PersistenceError{Path: s.filePath, Err: err}
	}

	if s.existsLocked(backupPath) {
		_ = s.fsys.Remove(backupPath)
	}
	return nil
}

func (s *FileTodoStore) existsLocked(path string) bool {
	_, err := s.fsys.Stat(path)
	return err == nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// nextIDLocked returns 1 for an empty collection, max existing ID + 1
// otherwise. Deleting anything but the highest ID leaves a permanent gap.
func (s *FileTodoStore) nextIDLocked() int {
	maxID := 0
	for _, t := range s.todos {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func (s *FileTodoStore) indexLocked(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CreateTodo assigns the next ID and timestamps, validates the record,
// appends it and persists. The capacity check runs before any mutation.
func (s *FileTodoStore) CreateTodo(todo models.Todo) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.todos) >= s.maxTodos {
		return models.Todo{}, &types.CapacityError{Limit: s.maxTodos}
	}

	now := time.Now()
	todo.ID = s.nextIDLocked()
	todo.Status = models.StatusPending
	todo.CreatedAt = now
	todo.UpdatedAt = now
	todo.CompletedAt = nil
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}

	if err := models.ValidateStruct(todo); err != nil {
		return models.Todo{}, fmt.Errorf("validation failed for new todo: %w", err)
	}

	s.todos = append(s.todos, todo)
	if err := s.saveLocked(); err != nil {
		return todo, err
	}
	return todo, nil
}

// GetTodo retrieves a todo by ID. A miss is a normal result, not an error.
func (s *FileTodoStore) GetTodo(id int) (models.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Todo{}, false
	}
	return s.todos[i], true
}

// UpdateTodo applies the provided fields, stamps updated_at and persists.
// An empty update returns the record unchanged without touching disk.
func (s *FileTodoStore) UpdateTodo(id int, upd TodoUpdate) (models.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Todo{}, false, nil
	}
	if upd.Empty() {
		return s.todos[i], true, nil
	}

	todo := s.todos[i]
	if upd.Title != nil {
		todo.Title = *upd.Title
	}
	if upd.Description != nil {
		todo.Description = *upd.Description
	}
	if upd.Priority != nil {
		todo.Priority = *upd.Priority
	}
	todo.UpdatedAt = time.Now()

	if err := models.ValidateStruct(todo); err != nil {
		return models.Todo{}, true, fmt.Errorf("validation failed for updated todo: %w", err)
	}

	s.todos[i] = todo
	if err := s.saveLocked(); err != nil {
		return todo, true, err
	}
	return todo, true, nil
}

// CompleteTodo marks a todo as completed and sets completed_at. Completing
// an already-completed todo is a no-op that reports the current state.
func (s *FileTodoStore) CompleteTodo(id int) (models.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Todo{}, false, nil
	}
	todo := s.todos[i]
	if todo.Status == models.StatusCompleted {
		return todo, true, nil
	}

	now := time.Now()
	todo.Status = models.StatusCompleted
	todo.CompletedAt = &now
	todo.UpdatedAt = now

	s.todos[i] = todo
	if err := s.saveLocked(); err != nil {
		return todo, true, err
	}
	return todo, true, nil
}

// ReopenTodo returns a completed todo to pending and clears completed_at.
// Reopening an already-pending todo is a no-op that reports the current state.
func (s *FileTodoStore) ReopenTodo(id int) (models.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Todo{}, false, nil
	}
	todo := s.todos[i]
	if todo.Status == models.StatusPending {
		return todo, true, nil
	}

	todo.Status = models.StatusPending
	todo.CompletedAt = nil
	todo.UpdatedAt = time.Now()

	s.todos[i] = todo
	if err := s.saveLocked(); err != nil {
		return todo, true, err
	}
	return todo, true, nil
}

// DeleteTodo removes a todo and persists.
func (s *FileTodoStore) DeleteTodo(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	if err := s.saveLocked(); err != nil {
		return true, err
	}
	return true, nil
}

// ClearCompleted removes every completed todo in one batch and persists once.
// With nothing to clear it does not touch disk.
func (s *FileTodoStore) ClearCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if t.Status != models.StatusCompleted {
			kept = append(kept, t)
		}
	}
	cleared := len(s.todos) - len(kept)
	if cleared == 0 {
		return 0, nil
	}

	s.todos = kept
	if err := s.saveLocked(); err != nil {
		return cleared, err
	}
	return cleared, nil
}

// ListTodos returns a copy of the todos matching filterFn (all when nil),
// sorted by priority weight descending, then by creation time ascending.
func (s *FileTodoStore) ListTodos(filterFn func(models.Todo) bool) []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if filterFn == nil || filterFn(t) {
			result = append(result, t)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		wi, wj := result[i].Priority.Weight(), result[j].Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Save persists the current collection.
func (s *FileTodoStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// EnsureStorageDir creates the storage file's directory if it is missing.
func (s *FileTodoStore) EnsureStorageDir() error {
	dir := filepath.Dir(s.filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return s.fsys.MkdirAll(dir, 0o755)
}

// FilePath reports the storage file path.
func (s *FileTodoStore) FilePath() string {
	return s.filePath
}

// Close releases resources held by the store. The file store keeps no open
// handles between operations.
func (s *FileTodoStore) Close() error {
	return nil
}
