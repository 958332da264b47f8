package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tasktrack/tasktrack/internal/domain/model"
)

// Registry holds named tasks so host applications can enumerate and run them
// by name. Generated task stubs register themselves at init time.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]model.Task)}
}

// Register adds a task. Registering an invalid or duplicate name is an error.
func (r *Registry) Register(task model.Task) error {
	if !model.ValidTaskName(task.Name) {
		return fmt.Errorf("invalid task name %q: must match [a-z][a-z0-9_]*", task.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[task.Name]; exists {
		return fmt.Errorf("task %q already registered", task.Name)
	}
	r.tasks[task.Name] = task
	return nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (model.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[name]
	return task, ok
}

// Names returns all registered task names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry backs the package-level registration used by generated
// task files, mirroring how database/sql drivers self-register.
var defaultRegistry = NewRegistry()

// Register adds a task to the default registry.
func Register(task model.Task) error {
	return defaultRegistry.Register(task)
}

// MustRegister adds a task to the default registry and panics on error.
// Intended for init-time registration in generated task files.
func MustRegister(task model.Task) {
	if err := defaultRegistry.Register(task); err != nil {
		panic(err)
	}
}

// RegisteredTask returns a task from the default registry.
func RegisteredTask(name string) (model.Task, bool) {
	return defaultRegistry.Get(name)
}

// RegisteredTaskNames returns all task names in the default registry, sorted.
func RegisteredTaskNames() []string {
	return defaultRegistry.Names()
}
