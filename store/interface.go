package store

import "github.com/josephgoksu/tasks/models"

// TaskStore defines the interface for task persistence.
// It outlines the contract for managing tasks, including CRUD operations,
// filtered queries, backup, restore, and resource cleanup.
type TaskStore interface {
	// Initialize configures the store and loads the persisted tasks and counter.
	// It should be called before any other store operations.
	Initialize(cfg Config) error

	// AddTask validates the input, allocates the next identifier, appends the
	// task and persists the whole collection.
	AddTask(in models.TaskInput) (models.Task, error)

	// GetTask retrieves a task by its identifier or returns ErrNotFound.
	GetTask(id int) (models.Task, error)

	// UpdateTask applies a partial update to the task with the given id.
	UpdateTask(id int, patch models.TaskPatch) (models.Task, error)

	// CompleteTask marks a task as completed. Completing twice is not an error.
	CompleteTask(id int) (models.Task, error)

	// DeleteTasks removes every task matched by the selector and returns how
	// many were removed. Matching nothing is not an error.
	DeleteTasks(sel Selector) (int, error)

	// QueryTasks returns the tasks matching every constraint of the filter,
	// in store order.
	QueryTasks(f Filter) ([]models.Task, error)

	// ListTasks returns all tasks in insertion order.
	ListTasks() ([]models.Task, error)

	// Backup copies the current data file to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current tasks with those read from the source path.
	Restore(sourcePath string) error

	// Verify checks the data file against the task schema and its checksum.
	Verify() (Report, error)

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
