package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tasktrack/tasktrack/internal/errors"
)

func TestGenerateWritesTaskAndTest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tasks")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	res, err := Generate(Options{Dir: dir, Name: "sync_users"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "sync_users.go"), res.TaskPath)
	assert.Equal(t, filepath.Join(dir, "sync_users_test.go"), res.TestPath)

	task, err := os.ReadFile(res.TaskPath)
	require.NoError(t, err)
	assert.Contains(t, string(task), "package tasks")
	assert.Contains(t, string(task), `Name: "sync_users"`)
	assert.Contains(t, string(task), "runSyncUsers")
	assert.NotContains(t, string(task), "RunOnce: true")

	test, err := os.ReadFile(res.TestPath)
	require.NoError(t, err)
	assert.Contains(t, string(test), "TestSyncUsersRegistered")
	assert.Contains(t, string(test), "TestSyncUsersRuns")
}

func TestGenerateRunOnce(t *testing.T) {
	dir := t.TempDir()

	res, err := Generate(Options{Dir: dir, Name: "seed_accounts", RunOnce: true})
	require.NoError(t, err)

	task, err := os.ReadFile(res.TaskPath)
	require.NoError(t, err)
	assert.Contains(t, string(task), "RunOnce: true")

	test, err := os.ReadFile(res.TestPath)
	require.NoError(t, err)
	assert.Contains(t, string(test), "RunOnce")
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, err := Generate(Options{Dir: dir, Name: "sync_users"})
	require.NoError(t, err)

	_, err = Generate(Options{Dir: dir, Name: "sync_users"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "-force")
}

func TestGenerateForceIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Generate(Options{Dir: dir, Name: "sync_users"})
	require.NoError(t, err)
	original, err := os.ReadFile(first.TaskPath)
	require.NoError(t, err)

	second, err := Generate(Options{Dir: dir, Name: "sync_users", Force: true})
	require.NoError(t, err)
	regenerated, err := os.ReadFile(second.TaskPath)
	require.NoError(t, err)

	assert.Equal(t, string(original), string(regenerated))
}

func TestGenerateCreatesDirWithExistingParent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "newtasks")

	res, err := Generate(Options{Dir: dir, Name: "sync_users"})
	require.NoError(t, err)
	assert.FileExists(t, res.TaskPath)
}

func TestGenerateValidation(t *testing.T) {
	parent := t.TempDir()

	tests := []struct {
		name string
		opts Options
	}{
		{"missing dir", Options{Name: "sync_users"}},
		{"empty name", Options{Dir: parent}},
		{"uppercase name", Options{Dir: parent, Name: "SyncUsers"}},
		{"leading digit", Options{Dir: parent, Name: "1sync"}},
		{"dashes", Options{Dir: parent, Name: "sync-users"}},
		{"missing parent", Options{Dir: filepath.Join(parent, "a", "b"), Name: "sync_users"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.opts)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "SyncUsers", typeName("sync_users"))
	assert.Equal(t, "Backfill", typeName("backfill"))
	assert.Equal(t, "AB2c", typeName("a_b2c"))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "tasks", packageName("internal/tasks"))
	assert.Equal(t, "mytasks", packageName("./my-tasks"))
	assert.Equal(t, "tasks", packageName("123"))
}
