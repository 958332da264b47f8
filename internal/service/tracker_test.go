package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tasktrack/tasktrack/internal/domain/model"
	"github.com/tasktrack/tasktrack/internal/mocks"
)

func newTestTracker(t *testing.T) (*mocks.MockExecutionRepository, *mocks.MockTxRunner, *Tracker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockExecutionRepository(ctrl)
	tx := mocks.NewMockTxRunner(ctrl)
	tracker := NewTracker(TrackerOptions{Repo: repo, Tx: tx})
	return repo, tx, tracker
}

// passthroughTx makes the mock runner invoke the callback with a nil
// transaction, which is enough for unit tests that never touch the database.
func passthroughTx(tx *mocks.MockTxRunner) {
	tx.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
}

func TestNewTrackerPanicsWithoutRepo(t *testing.T) {
	assert.Panics(t, func() {
		NewTracker(TrackerOptions{})
	})
}

func TestShouldRun(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		latest *model.TaskExecution
		err    error
		want   bool
	}{
		{
			name: "no previous execution",
			err:  model.ErrExecutionNotFound,
			want: true,
		},
		{
			name:   "latest failed",
			latest: &model.TaskExecution{TaskName: "backfill_totals", Success: false},
			want:   true,
		},
		{
			name:   "latest succeeded, repeatable task",
			latest: &model.TaskExecution{TaskName: "backfill_totals", Success: true, RunOnce: false},
			want:   true,
		},
		{
			name:   "latest succeeded, run-once task",
			latest: &model.TaskExecution{TaskName: "backfill_totals", Success: true, RunOnce: true},
			want:   false,
		},
		{
			name:   "latest failed, run-once task",
			latest: &model.TaskExecution{TaskName: "backfill_totals", Success: false, RunOnce: true},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, _, tracker := newTestTracker(t)
			repo.EXPECT().Latest(ctx, "backfill_totals").Return(tc.latest, tc.err)

			got, err := tracker.ShouldRun(ctx, "backfill_totals")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShouldRunPropagatesRepoError(t *testing.T) {
	ctx := context.Background()
	repo, _, tracker := newTestTracker(t)

	dbErr := errors.New("connection refused")
	repo.EXPECT().Latest(ctx, "backfill_totals").Return(nil, dbErr)

	got, err := tracker.ShouldRun(ctx, "backfill_totals")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, got)
}

func TestRunRecordsSuccess(t *testing.T) {
	ctx := context.Background()
	repo, tx, tracker := newTestTracker(t)
	passthroughTx(tx)

	repo.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error) {
			assert.Equal(t, "backfill_totals", params.TaskName)
			assert.True(t, params.Success)
			assert.Equal(t, "processed 42 rows", params.Output)
			assert.Empty(t, params.ErrorMessage)
			require.NotNil(t, params.DurationSeconds)
			assert.Greater(t, *params.DurationSeconds, 0.0)
			return &model.TaskExecution{ID: "exec-1", TaskName: params.TaskName, Success: true}, nil
		})

	result, err := tracker.Run(ctx, model.Task{
		Name: "backfill_totals",
		Fn: func(context.Context, *sql.Tx) (string, error) {
			return "processed 42 rows", nil
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Skipped)
	assert.False(t, result.DryRun)
	require.NotNil(t, result.Execution)
	assert.Equal(t, "exec-1", result.Execution.ID)
}

func TestRunRecordsFailureAndResignalsError(t *testing.T) {
	ctx := context.Background()
	repo, tx, tracker := newTestTracker(t)
	passthroughTx(tx)

	taskErr := errors.New("upstream unavailable")
	repo.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error) {
			assert.False(t, params.Success)
			assert.Contains(t, params.ErrorMessage, "upstream unavailable")
			return &model.TaskExecution{ID: "exec-2", TaskName: params.TaskName}, nil
		})

	result, err := tracker.Run(ctx, model.Task{
		Name: "backfill_totals",
		Fn: func(context.Context, *sql.Tx) (string, error) {
			return "", taskErr
		},
	})
	require.Error(t, err)
	// The wrapped error must still match the original via errors.Is.
	assert.ErrorIs(t, err, taskErr)
	require.NotNil(t, result)
	require.NotNil(t, result.Execution)
	assert.Equal(t, "exec-2", result.Execution.ID)
}

func TestRunFailureRecordErrorJoinsBoth(t *testing.T) {
	ctx := context.Background()
	repo, tx, tracker := newTestTracker(t)
	passthroughTx(tx)

	taskErr := errors.New("task broke")
	recErr := errors.New("insert failed")
	repo.EXPECT().Record(ctx, gomock.Any()).Return(nil, recErr)

	result, err := tracker.Run(ctx, model.Task{
		Name: "backfill_totals",
		Fn: func(context.Context, *sql.Tx) (string, error) {
			return "", taskErr
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, taskErr)
	assert.ErrorIs(t, err, recErr)
	assert.Nil(t, result)
}

func TestRunSkipsCompletedRunOnceTask(t *testing.T) {
	ctx := context.Background()
	repo, _, tracker := newTestTracker(t)

	repo.EXPECT().
		Latest(ctx, "seed_accounts").
		Return(&model.TaskExecution{TaskName: "seed_accounts", Success: true, RunOnce: true}, nil)

	called := false
	result, err := tracker.Run(ctx, model.Task{
		Name:    "seed_accounts",
		RunOnce: true,
		Fn: func(context.Context, *sql.Tx) (string, error) {
			called = true
			return "", nil
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Skipped)
	assert.Nil(t, result.Execution)
	assert.False(t, called, "skipped task must not execute")
}

func TestRunRetriesFailedRunOnceTask(t *testing.T) {
	ctx := context.Background()
	repo, tx, tracker := newTestTracker(t)
	passthroughTx(tx)

	repo.EXPECT().
		Latest(ctx, "seed_accounts").
		Return(&model.TaskExecution{TaskName: "seed_accounts", Success: false, RunOnce: true}, nil)
	repo.EXPECT().
		Record(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error) {
			assert.True(t, params.Success)
			assert.True(t, params.RunOnce)
			return &model.TaskExecution{ID: "exec-3", TaskName: params.TaskName, Success: true}, nil
		})

	result, err := tracker.Run(ctx, model.Task{
		Name:    "seed_accounts",
		RunOnce: true,
		Fn: func(context.Context, *sql.Tx) (string, error) {
			return "seeded", nil
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	require.NotNil(t, result.Execution)
}

func TestRunDryRunRollsBackAndRecordsNothing(t *testing.T) {
	ctx := context.Background()
	_, tx, tracker := newTestTracker(t)

	// The real runner rolls back when the callback errors; the mock mirrors
	// that by returning the callback error unchanged. No Record expectation
	// is set: a dry run must not write anything.
	tx.EXPECT().
		WithTx(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})

	called := false
	result, err := tracker.Run(ctx, model.Task{
		Name:   "backfill_totals",
		DryRun: true,
		Fn: func(context.Context, *sql.Tx) (string, error) {
			called = true
			return "would process 42 rows", nil
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.DryRun)
	assert.True(t, called)
	assert.Nil(t, result.Execution)
}

func TestRunDryRunFailureRecordsNothing(t *testing.T) {
	ctx := context.Background()
	_, tx, tracker := newTestTracker(t)
	passthroughTx(tx)

	taskErr := errors.New("boom")
	result, err := tracker.Run(ctx, model.Task{
		Name:   "backfill_totals",
		DryRun: true,
		Fn: func(context.Context, *sql.Tx) (string, error) {
			return "", taskErr
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, taskErr)
	require.NotNil(t, result)
	assert.Nil(t, result.Execution)
}

func TestRunValidation(t *testing.T) {
	_, _, tracker := newTestTracker(t)
	ctx := context.Background()

	_, err := tracker.Run(ctx, model.Task{Name: "  "})
	require.Error(t, err)

	_, err = tracker.Run(ctx, model.Task{Name: "no_fn"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no function")
}

func TestRunRequiresTxRunner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	tracker := NewTracker(TrackerOptions{Repo: mocks.NewMockExecutionRepository(ctrl)})

	_, err := tracker.Run(context.Background(), model.Task{
		Name: "backfill_totals",
		Fn:   func(context.Context, *sql.Tx) (string, error) { return "", nil },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction runner")
}
