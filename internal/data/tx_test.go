package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/internal/testutil"
)

func countExecutions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(), "SELECT count(*) FROM task_executions").Scan(&n)
	require.NoError(t, err)
	return n
}

func TestSQLTxRunner_CommitsOnNil(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		runner := NewSQLTxRunner(db)

		err := runner.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO task_executions (id, task_name, success)
				VALUES (gen_random_uuid(), 'tx_commit_check', true)`)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countExecutions(t, db))
	})
}

func TestSQLTxRunner_RollsBackOnError(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		runner := NewSQLTxRunner(db)

		failure := errors.New("abort")
		err := runner.WithTx(ctx, func(tx *sql.Tx) error {
			_, execErr := tx.ExecContext(ctx, `
				INSERT INTO task_executions (id, task_name, success)
				VALUES (gen_random_uuid(), 'tx_rollback_check', true)`)
			require.NoError(t, execErr)
			return failure
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 0, countExecutions(t, db))
	})
}
