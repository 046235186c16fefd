package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/josephgoksu/tasks/models"
	"github.com/spf13/afero"
)

// counterKey is the options entry holding the next identifier.
const counterKey = "id"

// FileTaskStore implements the TaskStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and, on the OS filesystem,
// uses file-level locking so cooperating processes serialize their writes.
type FileTaskStore struct {
	fs          afero.Fs
	logger      *log.Logger
	filePath    string
	optionsPath string
	format      string
	tasks       []models.Task
	options     map[string]any
	flk         *flock.Flock
}

// Option customizes a FileTaskStore.
type Option func(*FileTaskStore)

// WithFs sets the filesystem. Locking is only enabled on the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *FileTaskStore) { s.fs = fsys }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *FileTaskStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore(opts ...Option) *FileTaskStore {
	s := &FileTaskStore{
		fs:      afero.NewOsFs(),
		logger:  log.New(io.Discard),
		options: map[string]any{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates and initializes a FileTaskStore in one step.
func Open(cfg Config, opts ...Option) (*FileTaskStore, error) {
	s := NewFileTaskStore(opts...)
	if err := s.Initialize(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize validates the configuration, prepares the data directory and
// loads the persisted tasks and counter. A missing data file means an empty store.
func (s *FileTaskStore) Initialize(cfg Config) error {
	cfg, err := cfg.normalize()
	if err != nil {
		return err
	}
	s.filePath = cfg.DataFile
	s.optionsPath = cfg.OptionsFile
	s.format = cfg.Format

	for _, dir := range []string{filepath.Dir(s.filePath), filepath.Dir(s.optionsPath)} {
		if dir == "." || dir == "" {
			continue
		}
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, ok := s.fs.(*afero.OsFs); ok {
		s.flk = flock.New(s.filePath + lockSuffix)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.reloadInternal(); err != nil {
		return err
	}
	s.logger.Debug("store initialized", "file", s.filePath, "format", s.format, "tasks", len(s.tasks))
	return nil
}

// FilePath returns the path of the data file.
func (s *FileTaskStore) FilePath() string { return s.filePath }

// OptionsPath returns the path of the counter file.
func (s *FileTaskStore) OptionsPath() string { return s.optionsPath }

// Format returns the configured data format.
func (s *FileTaskStore) Format() string { return s.format }

// lock acquires the inter-process lock, blocking if another process holds it.
func (s *FileTaskStore) lock() (func(), error) {
	if s.flk == nil {
		return func() {}, nil
	}
	locked, err := s.flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", s.filePath, err)
	}
	if !locked {
		s.logger.Debug("waiting for store lock", "lock", s.flk.Path())
		if err := s.flk.Lock(); err != nil {
			return nil, fmt.Errorf("failed to acquire blocking lock for %s: %w", s.filePath, err)
		}
	}
	return func() { _ = s.flk.Unlock() }, nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// reloadInternal re-reads tasks and options from disk. The caller holds the lock.
func (s *FileTaskStore) reloadInternal() error {
	if err := s.loadTasksInternal(); err != nil {
		return err
	}
	return s.loadOptionsInternal()
}

// loadTasksInternal reads tasks from the file, verifies the checksum, and decodes them.
func (s *FileTaskStore) loadTasksInternal() error {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = []models.Task{}
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	checksumPath := s.filePath + checksumSuffix
	expected, err := afero.ReadFile(s.fs, checksumPath)
	switch {
	case err == nil:
		if actual := calculateChecksum(data); actual != strings.TrimSpace(string(expected)) {
			return fmt.Errorf("checksum mismatch for %s (expected %s, got %s): the file is corrupt or was edited outside the store; run 'tasks restore <backup>' or delete %s to accept the edit",
				s.filePath, strings.TrimSpace(string(expected)), actual, checksumPath)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Files written by hand or by older versions carry no checksum; the next save adds one.
	default:
		return fmt.Errorf("error reading checksum file %s: %w", checksumPath, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.tasks = []models.Task{}
		return nil
	}

	tasks, err := s.decodeTasks(data)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.filePath, err)
	}
	s.tasks = tasks
	return nil
}

func (s *FileTaskStore) decodeTasks(data []byte) ([]models.Task, error) {
	records, err := decodeTasks(s.format, data)
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(records))
	for i, record := range records {
		task, err := models.TaskFromMap(record)
		if err != nil {
			return nil, fmt.Errorf("task #%d: %w", i+1, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FileTaskStore) loadOptionsInternal() error {
	data, err := afero.ReadFile(s.fs, s.optionsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.options = map[string]any{}
			return nil
		}
		return fmt.Errorf("failed to read options file %s: %w", s.optionsPath, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.options = map[string]any{}
		return nil
	}
	options, err := decodeOptions(s.format, data)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.optionsPath, err)
	}
	s.options = options
	return nil
}

// writeFileAtomic writes data to a temporary file and renames it over path.
func (s *FileTaskStore) writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename temporary file %s to %s: %w", tmp, path, err)
	}
	return nil
}

// saveTasksInternal writes the whole collection, then its checksum.
func (s *FileTaskStore) saveTasksInternal() error {
	records := make([]map[string]any, 0, len(s.tasks))
	for _, t := range s.tasks {
		records = append(records, t.ToMap())
	}
	data, err := encodeTasks(s.format, records)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}
	if err := s.writeFileAtomic(s.filePath, data); err != nil {
		return err
	}
	if err := s.writeFileAtomic(s.filePath+checksumSuffix, []byte(calculateChecksum(data))); err != nil {
		return fmt.Errorf("data file %s updated, but its checksum was not: %w", s.filePath, err)
	}
	s.logger.Debug("tasks saved", "file", s.filePath, "tasks", len(s.tasks))
	return nil
}

func (s *FileTaskStore) saveOptionsInternal() error {
	data, err := encodeOptions(s.format, s.options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	return s.writeFileAtomic(s.optionsPath, data)
}

// storedCounter returns the persisted next identifier, if any.
func (s *FileTaskStore) storedCounter() int {
	switch n := s.options[counterKey].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// nextIDInternal allocates an identifier and persists the advanced counter.
// The result is never below max(id)+1, so it cannot collide with a held task
// even when the counter file was lost or edited.
func (s *FileTaskStore) nextIDInternal() (int, error) {
	maxID := 0
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}
	id := max(s.storedCounter(), maxID+1)
	s.options[counterKey] = id + 1
	if err := s.saveOptionsInternal(); err != nil {
		return 0, fmt.Errorf("failed to save id counter: %w", err)
	}
	s.logger.Debug("allocated task id", "id", id)
	return id, nil
}

func (s *FileTaskStore) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// AddTask validates the input, allocates an identifier and persists the new task.
func (s *FileTaskStore) AddTask(in models.TaskInput) (models.Task, error) {
	// Validate before allocating so rejected input does not consume an id.
	task, err := models.NewTask(0, in)
	if err != nil {
		return models.Task{}, err
	}

	unlock, err := s.lock()
	if err != nil {
		return models.Task{}, err
	}
	defer unlock()

	if err := s.reloadInternal(); err != nil {
		return models.Task{}, fmt.Errorf("failed to reload tasks before create: %w", err)
	}

	task.ID, err = s.nextIDInternal()
	if err != nil {
		return models.Task{}, err
	}
	s.tasks = append(s.tasks, task)

	if err := s.saveTasksInternal(); err != nil {
		_ = s.loadTasksInternal()
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by its identifier.
func (s *FileTaskStore) GetTask(id int) (models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return models.Task{}, err
	}
	defer unlock()

	if err := s.loadTasksInternal(); err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks for GetTask: %w", err)
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.tasks[i], nil
}

// mutateTask applies fn to the task with the given id and persists the result.
func (s *FileTaskStore) mutateTask(id int, op string, fn func(*models.Task) error) (models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return models.Task{}, err
	}
	defer unlock()

	if err := s.loadTasksInternal(); err != nil {
		return models.Task{}, fmt.Errorf("failed to reload tasks before %s: %w", op, err)
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	original := s.tasks[i]
	task := original
	if err := fn(&task); err != nil {
		return models.Task{}, err
	}
	s.tasks[i] = task

	if err := s.saveTasksInternal(); err != nil {
		s.tasks[i] = original
		return models.Task{}, fmt.Errorf("failed to save task %d after %s: %w", id, op, err)
	}
	return task, nil
}

// UpdateTask applies a partial update to an existing task.
func (s *FileTaskStore) UpdateTask(id int, patch models.TaskPatch) (models.Task, error) {
	return s.mutateTask(id, "update", func(t *models.Task) error {
		return t.Update(patch)
	})
}

// CompleteTask marks a task as completed.
func (s *FileTaskStore) CompleteTask(id int) (models.Task, error) {
	return s.mutateTask(id, "complete", func(t *models.Task) error {
		t.Complete()
		return nil
	})
}

// DeleteTasks removes the tasks matched by sel and returns how many were removed.
func (s *FileTaskStore) DeleteTasks(sel Selector) (int, error) {
	if err := sel.validate(); err != nil {
		return 0, err
	}

	unlock, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	if err := s.loadTasksInternal(); err != nil {
		return 0, fmt.Errorf("failed to reload tasks before delete: %w", err)
	}

	kept := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !sel.matches(t) {
			kept = append(kept, t)
		}
	}
	deleted := len(s.tasks) - len(kept)
	s.tasks = kept

	if err := s.saveTasksInternal(); err != nil {
		_ = s.loadTasksInternal()
		return 0, fmt.Errorf("failed to save after deleting tasks: %w", err)
	}
	return deleted, nil
}

// QueryTasks returns the tasks matching f in store order.
func (s *FileTaskStore) QueryTasks(f Filter) ([]models.Task, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.loadTasksInternal(); err != nil {
		return nil, fmt.Errorf("failed to load tasks for query: %w", err)
	}
	return filterTasks(s.tasks, f), nil
}

// ListTasks returns every task in insertion order.
func (s *FileTaskStore) ListTasks() ([]models.Task, error) {
	return s.QueryTasks(Filter{})
}

// Backup copies the current data file to the destination path.
func (s *FileTaskStore) Backup(destinationPath string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	input, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("nothing to back up: %s does not exist", s.filePath)
		}
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}
	if dir := filepath.Dir(destinationPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current tasks with the ones in sourcePath.
// The source is decoded and validated first, so a broken backup leaves the store untouched.
func (s *FileTaskStore) Restore(sourcePath string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	sourceData, err := afero.ReadFile(s.fs, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}
	tasks, err := s.decodeTasks(sourceData)
	if err != nil {
		return fmt.Errorf("backup %s is not a valid task file: %w", sourcePath, err)
	}

	previous := s.tasks
	s.tasks = tasks
	if err := s.saveTasksInternal(); err != nil {
		s.tasks = previous
		return fmt.Errorf("failed to write restored data: %w", err)
	}
	return nil
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		if err := s.flk.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			return err
		}
	}
	return nil
}
