package data

import (
	"context"
	"database/sql"

	"github.com/tasktrack/tasktrack/internal/data/pgxutil"
)

// SQLTxRunner implements core.TxRunner over a database/sql pool.
type SQLTxRunner struct {
	DB *sql.DB
}

// NewSQLTxRunner constructs a SQLTxRunner.
func NewSQLTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{DB: db}
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on error.
func (t *SQLTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if t == nil || t.DB == nil {
		return ErrExecutionsNotConfigured
	}
	return pgxutil.WithTx(ctx, t.DB, fn)
}
