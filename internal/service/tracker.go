package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/domain/model"
)

// errDryRunRollback forces the transaction to roll back after a dry run.
var errDryRunRollback = errors.New("dry run rollback")

// TrackerOptions groups dependencies for Tracker.
type TrackerOptions struct {
	Repo   core.ExecutionRepository // Required: execution record persistence
	Tx     core.TxRunner            // Required for Run; unused by read paths
	Logger *slog.Logger             // Optional: structured logger
}

// Tracker records task executions, answers the should-run predicate, and
// wraps task logic in a timed, transacted run.
//
// The single-run guarantee is a best-effort read-then-decide check. Two
// concurrent first runs of a run-once task can both execute; callers that
// need mutual exclusion must coordinate externally.
type Tracker struct {
	repo   core.ExecutionRepository
	tx     core.TxRunner
	logger *slog.Logger
}

// NewTracker constructs a new Tracker.
func NewTracker(opts TrackerOptions) *Tracker {
	if opts.Repo == nil {
		panic("ExecutionRepository is required")
	}
	return &Tracker{
		repo:   opts.Repo,
		tx:     opts.Tx,
		logger: opts.Logger,
	}
}

// Record persists one execution record unconditionally.
func (t *Tracker) Record(ctx context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error) {
	return t.repo.Record(ctx, params)
}

// ShouldRun reports whether a task should execute given its most recent
// recorded outcome. A task runs unless its latest record is a run-once
// success: no history runs, a failed latest runs, and a successful latest
// without the run-once flag runs.
func (t *Tracker) ShouldRun(ctx context.Context, taskName string) (bool, error) {
	latest, err := t.repo.Latest(ctx, taskName)
	if err != nil {
		if errors.Is(err, model.ErrExecutionNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("fetch latest execution: %w", err)
	}
	if latest.RunOnce && latest.Success {
		return false, nil
	}
	return true, nil
}

// History returns the most recent executions of a task, newest first.
func (t *Tracker) History(ctx context.Context, taskName string, limit int) ([]*model.TaskExecution, error) {
	return t.repo.History(ctx, taskName, limit)
}

// Run executes task.Fn inside a database transaction, times it, and writes
// exactly one outcome record after the transaction resolves. The record
// write happens outside the transaction so a failure record survives the
// rollback. A run-once task whose latest record is a run-once success is
// skipped without invoking Fn or writing a record. Dry runs execute Fn,
// roll back all database changes, and record nothing.
//
// On task failure the error text is recorded and the original error is
// returned wrapped, so errors.Is still observes it.
func (t *Tracker) Run(ctx context.Context, task model.Task) (*model.RunResult, error) {
	if strings.TrimSpace(task.Name) == "" {
		return nil, errors.New("task name is required")
	}
	if task.Fn == nil {
		return nil, fmt.Errorf("task %s has no function", task.Name)
	}
	if t.tx == nil {
		return nil, errors.New("transaction runner is required to run tasks")
	}

	if task.RunOnce {
		run, err := t.ShouldRun(ctx, task.Name)
		if err != nil {
			return nil, err
		}
		if !run {
			t.log().InfoContext(ctx, "task already executed successfully, skipping",
				"task", task.Name, "run_once", true)
			return &model.RunResult{Skipped: true}, nil
		}
	}

	start := time.Now()
	var output string
	runErr := t.tx.WithTx(ctx, func(tx *sql.Tx) error {
		out, err := task.Fn(ctx, tx)
		if err != nil {
			return err
		}
		output = out
		if task.DryRun {
			return errDryRunRollback
		}
		return nil
	})
	duration := time.Since(start).Seconds()

	if errors.Is(runErr, errDryRunRollback) {
		t.log().InfoContext(ctx, "dry run complete, changes rolled back",
			"task", task.Name, "duration_seconds", duration)
		return &model.RunResult{DryRun: true}, nil
	}

	if runErr != nil {
		return t.recordFailure(ctx, task, runErr, duration)
	}
	return t.recordSuccess(ctx, task, output, duration)
}

func (t *Tracker) recordSuccess(ctx context.Context, task model.Task, output string, duration float64) (*model.RunResult, error) {
	exec, err := t.repo.Record(ctx, model.RecordExecutionParams{
		TaskName:        task.Name,
		Success:         true,
		Parameters:      task.Parameters,
		Output:          output,
		DurationSeconds: &duration,
		RunOnce:         task.RunOnce,
	})
	if err != nil {
		return nil, fmt.Errorf("record success for task %s: %w", task.Name, err)
	}
	t.log().InfoContext(ctx, "task completed",
		"task", task.Name, "duration_seconds", duration)
	return &model.RunResult{Execution: exec}, nil
}

func (t *Tracker) recordFailure(ctx context.Context, task model.Task, taskErr error, duration float64) (*model.RunResult, error) {
	errMsg := fmt.Sprintf("%T: %v", taskErr, taskErr)

	var exec *model.TaskExecution
	if !task.DryRun {
		var recErr error
		exec, recErr = t.repo.Record(ctx, model.RecordExecutionParams{
			TaskName:        task.Name,
			Success:         false,
			Parameters:      task.Parameters,
			ErrorMessage:    errMsg,
			DurationSeconds: &duration,
			RunOnce:         task.RunOnce,
		})
		if recErr != nil {
			return nil, errors.Join(
				fmt.Errorf("task %s failed: %w", task.Name, taskErr),
				fmt.Errorf("record failure: %w", recErr),
			)
		}
	}

	t.log().ErrorContext(ctx, "task failed",
		"task", task.Name, "error", errMsg, "duration_seconds", duration)
	return &model.RunResult{Execution: exec}, fmt.Errorf("task %s failed: %w", task.Name, taskErr)
}

func (t *Tracker) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}
