// Package tasktrack records when named administrative tasks run, whether
// they succeeded, and how long they took, and optionally prevents a task
// from running again after a successful attempt.
//
// Host applications define tasks as functions that run inside a database
// transaction, register them (usually from files generated by
// tasktrack-admin new-task), and execute them through a Tracker. Every run
// writes one immutable execution record outside the transaction, so failure
// records survive rollbacks.
package tasktrack

import (
	"context"
	"database/sql"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/data"
	"github.com/tasktrack/tasktrack/internal/domain/model"
	"github.com/tasktrack/tasktrack/internal/migrate"
	"github.com/tasktrack/tasktrack/internal/service"
)

// Task describes one tracked unit of work.
type Task = model.Task

// TaskFunc is caller-supplied task logic.
type TaskFunc = model.TaskFunc

// TaskExecution is one immutable record of a task invocation.
type TaskExecution = model.TaskExecution

// RunResult reports what the tracker did for one invocation.
type RunResult = model.RunResult

// Tracker records executions, answers the should-run predicate, and wraps
// task logic in a timed, transacted run.
type Tracker = service.Tracker

// TrackerOptions groups dependencies for NewTracker.
type TrackerOptions = service.TrackerOptions

// ExecutionRepository is the persistence port for execution records.
type ExecutionRepository = core.ExecutionRepository

// ErrExecutionNotFound is returned when a task has no execution record.
var ErrExecutionNotFound = model.ErrExecutionNotFound

// NewTracker constructs a Tracker.
func NewTracker(opts TrackerOptions) *Tracker {
	return service.NewTracker(opts)
}

// Register adds a task to the default registry.
func Register(task Task) error {
	return service.Register(task)
}

// MustRegister adds a task to the default registry and panics on error.
// Intended for init-time registration in generated task files.
func MustRegister(task Task) {
	service.MustRegister(task)
}

// RegisteredTask returns a task from the default registry.
func RegisteredTask(name string) (Task, bool) {
	return service.RegisteredTask(name)
}

// RegisteredTaskNames returns all registered task names, sorted.
func RegisteredTaskNames() []string {
	return service.RegisteredTaskNames()
}

// TxRunner runs task logic inside a database transaction.
type TxRunner = core.TxRunner

// NewPostgresRepository returns the Postgres-backed execution repository.
func NewPostgresRepository(db *sql.DB) ExecutionRepository {
	return data.NewExecutionRepo(db)
}

// NewTxRunner returns a TxRunner over a database/sql pool.
func NewTxRunner(db *sql.DB) TxRunner {
	return data.NewSQLTxRunner(db)
}

// Migrate applies the task_executions schema migrations. Safe to call repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
