package testutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/domain/model"
)

// ExecutionBuilder constructs execution records for tests with sensible
// defaults. Each With* method returns the builder for chaining.
type ExecutionBuilder struct {
	params model.RecordExecutionParams
}

// NewExecution starts a builder for a successful execution of taskName.
func NewExecution(taskName string) *ExecutionBuilder {
	return &ExecutionBuilder{
		params: model.RecordExecutionParams{
			TaskName: taskName,
			Success:  true,
			Output:   "done",
		},
	}
}

// Failed marks the execution as failed with the given error message.
func (b *ExecutionBuilder) Failed(errMsg string) *ExecutionBuilder {
	b.params.Success = false
	b.params.ErrorMessage = errMsg
	return b
}

// WithOutput sets the captured output.
func (b *ExecutionBuilder) WithOutput(output string) *ExecutionBuilder {
	b.params.Output = output
	return b
}

// WithParameters sets the recorded task parameters.
func (b *ExecutionBuilder) WithParameters(params json.RawMessage) *ExecutionBuilder {
	b.params.Parameters = params
	return b
}

// WithDuration sets the wall-clock duration in seconds.
func (b *ExecutionBuilder) WithDuration(seconds float64) *ExecutionBuilder {
	b.params.DurationSeconds = &seconds
	return b
}

// RunOnce marks the execution as belonging to a run-once task.
func (b *ExecutionBuilder) RunOnce() *ExecutionBuilder {
	b.params.RunOnce = true
	return b
}

// Params returns the built record params without persisting anything.
func (b *ExecutionBuilder) Params() model.RecordExecutionParams {
	return b.params
}

// Insert persists the execution through the given repository and returns the
// stored record.
func (b *ExecutionBuilder) Insert(t TestingTB, repo core.ExecutionRepository) *model.TaskExecution {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exec, err := repo.Record(ctx, b.params)
	if err != nil {
		t.Fatalf("Failed to insert execution for task %s: %v", b.params.TaskName, err)
	}
	return exec
}
