package core

import (
	"context"
	"database/sql"

	"github.com/tasktrack/tasktrack/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// ExecutionRepository defines the interface for task execution record
// persistence. Records are write-once; there is no update or delete surface.
type ExecutionRepository interface {
	Record(ctx context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error)
	Latest(ctx context.Context, taskName string) (*model.TaskExecution, error)
	History(ctx context.Context, taskName string, limit int) ([]*model.TaskExecution, error)
	GetByID(ctx context.Context, id string) (*model.TaskExecution, error)
	List(ctx context.Context, opts model.ExecutionListOptions) ([]*model.TaskExecution, error)
	CountByTask(ctx context.Context) ([]model.TaskExecutionCount, error)
}

// TxRunner runs a function inside a database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
