package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/internal/domain/model"
)

func noopTask(name string) model.Task {
	return model.Task{
		Name: name,
		Fn:   func(context.Context, *sql.Tx) (string, error) { return "", nil },
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(noopTask("prune_sessions")))

	task, ok := r.Get("prune_sessions")
	assert.True(t, ok)
	assert.Equal(t, "prune_sessions", task.Name)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(noopTask("prune_sessions")))
	err := r.Register(noopTask("prune_sessions"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryRejectsInvalidNames(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"", "Bad", "1task", "with-dash", "with space"} {
		err := r.Register(noopTask(name))
		assert.Error(t, err, "name %q should be rejected", name)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(noopTask("zeta")))
	require.NoError(t, r.Register(noopTask("alpha")))
	require.NoError(t, r.Register(noopTask("mid")))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestDefaultRegistry(t *testing.T) {
	// The default registry is process-global, so use a name no other test
	// registers.
	require.NoError(t, Register(noopTask("registry_smoke")))

	task, ok := RegisteredTask("registry_smoke")
	assert.True(t, ok)
	assert.Equal(t, "registry_smoke", task.Name)
	assert.Contains(t, RegisteredTaskNames(), "registry_smoke")

	assert.Panics(t, func() {
		MustRegister(noopTask("registry_smoke"))
	})
}
