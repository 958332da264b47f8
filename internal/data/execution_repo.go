package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tasktrack/tasktrack/internal/data/pgxutil"
	"github.com/tasktrack/tasktrack/internal/domain/model"
	apperrors "github.com/tasktrack/tasktrack/internal/errors"
)

const (
	// executionColumns defines the column list for TaskExecution SELECT
	// queries to ensure consistent field mapping.
	executionColumns = `id, task_name, executed_at, success, parameters, output, error_message, duration_seconds, run_once`

	defaultExecutionPageSize = 50
	// maxExecutionPageSize sits one above the HTTP page-size cap so the list
	// page's next-page look-ahead row survives the clamp at the largest page.
	maxExecutionPageSize = 201
)

// ExecutionRepo provides persistence for task execution records.
type ExecutionRepo struct {
	DB *sql.DB
}

// NewExecutionRepo constructs an ExecutionRepo.
func NewExecutionRepo(db *sql.DB) *ExecutionRepo {
	return &ExecutionRepo{DB: db}
}

// Record inserts one new execution record unconditionally and returns the
// stored row. Records are immutable after creation.
func (r *ExecutionRepo) Record(ctx context.Context, params model.RecordExecutionParams) (*model.TaskExecution, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}
	if strings.TrimSpace(params.TaskName) == "" {
		return nil, ErrTaskNameRequired
	}

	const query = `
		INSERT INTO task_executions
			(id, task_name, success, parameters, output, error_message, duration_seconds, run_once)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + executionColumns

	var parameters any
	if len(params.Parameters) > 0 {
		parameters = []byte(params.Parameters)
	}

	var rec *model.TaskExecution
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query,
			uuid.NewString(),
			params.TaskName,
			params.Success,
			parameters,
			params.Output,
			params.ErrorMessage,
			params.DurationSeconds,
			params.RunOnce,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TaskExecution])
		if err != nil {
			return err
		}
		rec = &row
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record task execution: %w", apperrors.MapDBError(err))
	}
	return rec, nil
}

// Latest returns the most recent execution record for a task, or
// ErrExecutionNotFound when the task has never been recorded.
func (r *ExecutionRepo) Latest(ctx context.Context, taskName string) (*model.TaskExecution, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}
	if strings.TrimSpace(taskName) == "" {
		return nil, ErrTaskNameRequired
	}

	const query = `
		SELECT ` + executionColumns + `
		FROM task_executions
		WHERE task_name = $1
		ORDER BY executed_at DESC, id DESC
		LIMIT 1`

	rec, err := r.collectOne(ctx, query, taskName)
	if err != nil {
		return nil, fmt.Errorf("latest task execution: %w", apperrors.MapDBError(err))
	}
	return rec, nil
}

// GetByID retrieves a single execution record by its identifier.
func (r *ExecutionRepo) GetByID(ctx context.Context, id string) (*model.TaskExecution, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrExecutionIDRequired
	}

	const query = `
		SELECT ` + executionColumns + `
		FROM task_executions
		WHERE id = $1`

	rec, err := r.collectOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get task execution: %w", apperrors.MapDBError(err))
	}
	return rec, nil
}

// History returns the N most recent execution records for a task, newest first.
func (r *ExecutionRepo) History(ctx context.Context, taskName string, limit int) ([]*model.TaskExecution, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}
	if strings.TrimSpace(taskName) == "" {
		return nil, ErrTaskNameRequired
	}

	const query = `
		SELECT ` + executionColumns + `
		FROM task_executions
		WHERE task_name = $1
		ORDER BY executed_at DESC, id DESC
		LIMIT $2`

	rows, err := r.collect(ctx, query, taskName, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("task execution history: %w", apperrors.MapDBError(err))
	}
	return rows, nil
}

// List returns execution records matching the given filters, newest first
// unless an ascending sort is requested.
func (r *ExecutionRepo) List(ctx context.Context, opts model.ExecutionListOptions) ([]*model.TaskExecution, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}

	where, args, argIndex := buildExecutionFilters(opts)

	query := `SELECT ` + executionColumns + ` FROM task_executions` + where
	query += buildExecutionOrderClause(opts.SortDir)
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, clampLimit(opts.Limit), max(opts.Offset, 0))

	rows, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list task executions: %w", apperrors.MapDBError(err))
	}
	return rows, nil
}

// CountByTask returns per-task execution totals for the dashboard.
func (r *ExecutionRepo) CountByTask(ctx context.Context) ([]model.TaskExecutionCount, error) {
	if r == nil || r.DB == nil {
		return nil, ErrExecutionsNotConfigured
	}

	const query = `
		SELECT
			task_name,
			count(*) AS total,
			count(*) FILTER (WHERE NOT success) AS failures,
			max(executed_at) AS last_run_at
		FROM task_executions
		GROUP BY task_name
		ORDER BY last_run_at DESC`

	var counts []model.TaskExecutionCount
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TaskExecutionCount])
		if err != nil {
			return err
		}
		counts = collected
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count task executions: %w", apperrors.MapDBError(err))
	}
	return counts, nil
}

// buildExecutionFilters constructs the WHERE clause and args for List.
func buildExecutionFilters(opts model.ExecutionListOptions) (string, []any, int) {
	var clauses []string
	var args []any
	argIndex := 1

	if opts.TaskName != nil && *opts.TaskName != "" {
		clauses = append(clauses, fmt.Sprintf(`task_name = $%d`, argIndex))
		args = append(args, *opts.TaskName)
		argIndex++
	}
	if opts.Success != nil {
		clauses = append(clauses, fmt.Sprintf(`success = $%d`, argIndex))
		args = append(args, *opts.Success)
		argIndex++
	}
	if opts.Since != nil {
		clauses = append(clauses, fmt.Sprintf(`executed_at >= $%d`, argIndex))
		args = append(args, *opts.Since)
		argIndex++
	}
	if opts.Until != nil {
		clauses = append(clauses, fmt.Sprintf(`executed_at < $%d`, argIndex))
		args = append(args, *opts.Until)
		argIndex++
	}
	if opts.SearchQuery != nil && *opts.SearchQuery != "" {
		clauses = append(clauses, fmt.Sprintf(
			`(task_name ILIKE $%d OR output ILIKE $%d OR error_message ILIKE $%d)`,
			argIndex, argIndex+1, argIndex+2))
		pattern := "%" + *opts.SearchQuery + "%"
		args = append(args, pattern, pattern, pattern)
		argIndex += 3
	}

	if len(clauses) == 0 {
		return "", args, argIndex
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, argIndex
}

func buildExecutionOrderClause(sortDir *string) string {
	dir := "DESC"
	if sortDir != nil && strings.EqualFold(*sortDir, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf(` ORDER BY executed_at %s, id %s`, dir, dir)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultExecutionPageSize
	}
	if limit > maxExecutionPageSize {
		return maxExecutionPageSize
	}
	return limit
}

func (r *ExecutionRepo) collectOne(ctx context.Context, query string, args ...any) (*model.TaskExecution, error) {
	var rec *model.TaskExecution
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TaskExecution])
		if err != nil {
			return err
		}
		rec = &row
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ExecutionRepo) collect(ctx context.Context, query string, args ...any) ([]*model.TaskExecution, error) {
	var out []*model.TaskExecution
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TaskExecution])
		if err != nil {
			return err
		}
		for i := range collected {
			row := collected[i]
			out = append(out, &row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
