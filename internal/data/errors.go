package data

import (
	"errors"

	"github.com/tasktrack/tasktrack/internal/domain/model"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrExecutionsNotConfigured = errors.New("execution repository not configured")
	ErrTaskNameRequired        = errors.New("task_name is required")
	ErrExecutionIDRequired     = errors.New("execution id is required")

	// ErrExecutionNotFound aliases the model sentinel so callers on either
	// side of the port can match it.
	ErrExecutionNotFound = model.ErrExecutionNotFound
)
