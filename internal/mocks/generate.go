// Package mocks provides mock implementations for testing the tasktrack
// execution tracking system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. The mocks are generated using
// go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockExecutionRepository(ctrl)
//	repo.EXPECT().Latest(gomock.Any(), "prune_sessions").Return(exec, nil)
package mocks

// Generate mock for ExecutionRepository interface from internal/core package.
// This creates MockExecutionRepository with methods for all ExecutionRepository interface methods:
// Record, Latest, History, GetByID, List, CountByTask
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=execution_repository_mock.go github.com/tasktrack/tasktrack/internal/core ExecutionRepository

// Generate mock for TxRunner interface from internal/core package.
// This creates MockTxRunner with a WithTx method.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=tx_runner_mock.go github.com/tasktrack/tasktrack/internal/core TxRunner
