// Package model defines the core data types used throughout the tasktrack
// execution tracking system.
package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"time"
)

// TaskExecution is one immutable record of a task invocation. Records are
// created exactly once, never updated, and retrieved newest-first.
type TaskExecution struct {
	ID              string          `json:"id"                         db:"id"`
	TaskName        string          `json:"task_name"                  db:"task_name"`
	ExecutedAt      time.Time       `json:"executed_at"                db:"executed_at"`
	Success         bool            `json:"success"                    db:"success"`
	Parameters      json.RawMessage `json:"parameters,omitempty"       db:"parameters"`
	Output          string          `json:"output"                     db:"output"`
	ErrorMessage    string          `json:"error_message"              db:"error_message"`
	DurationSeconds *float64        `json:"duration_seconds,omitempty" db:"duration_seconds"`
	RunOnce         bool            `json:"run_once"                   db:"run_once"`
}

// Status returns a human-readable outcome label.
func (e *TaskExecution) Status() string {
	if e.Success {
		return "Success"
	}
	return "Failed"
}

// RecordExecutionParams holds the outcome fields for one new execution record.
type RecordExecutionParams struct {
	TaskName        string
	Success         bool
	Parameters      json.RawMessage
	Output          string
	ErrorMessage    string
	DurationSeconds *float64
	RunOnce         bool
}

// ExecutionListOptions are the admin browsing filters. Pointer fields are
// applied only when non-nil.
type ExecutionListOptions struct {
	TaskName    *string
	Success     *bool
	Since       *time.Time
	Until       *time.Time
	SearchQuery *string
	SortDir     *string
	Limit       int
	Offset      int
}

// TaskExecutionCount is a per-task rollup row for the dashboard.
type TaskExecutionCount struct {
	TaskName  string     `json:"task_name"  db:"task_name"`
	Total     int64      `json:"total"      db:"total"`
	Failures  int64      `json:"failures"   db:"failures"`
	LastRunAt *time.Time `json:"last_run_at,omitempty" db:"last_run_at"`
}

// TaskFunc is caller-supplied task logic. It runs inside a database
// transaction; the returned string is captured as the record's output.
type TaskFunc func(ctx context.Context, tx *sql.Tx) (string, error)

// Task describes one tracked unit of work handed to the tracker.
type Task struct {
	// Name identifies the task in execution records.
	Name string
	// RunOnce restricts the task to a single successful historical run.
	RunOnce bool
	// DryRun executes Fn but rolls back all database changes and records nothing.
	DryRun bool
	// Parameters are stored verbatim on the execution record.
	Parameters json.RawMessage
	// Fn is the task logic.
	Fn TaskFunc
}

// RunResult reports what the tracker did for one invocation.
type RunResult struct {
	// Skipped is true when a run-once task was not invoked because its most
	// recent record is a run-once success.
	Skipped bool
	// DryRun is true when the task ran but its changes were rolled back.
	DryRun bool
	// Execution is the record written for this run. Nil when Skipped or DryRun.
	Execution *TaskExecution
}

// ErrExecutionNotFound is returned when a task has no execution record.
var ErrExecutionNotFound = errors.New("execution record not found")

var taskNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidTaskName reports whether name is a snake_case identifier suitable for
// generated file and task names.
func ValidTaskName(name string) bool {
	return taskNameRe.MatchString(name)
}
