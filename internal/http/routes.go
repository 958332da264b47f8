// Package httpx serves the read-only admin browsing surface over the task
// execution table: HTML list/detail pages plus JSON endpoints. There are no
// mutation routes; record retention and authentication belong to the host
// application.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/service"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Tracker    *service.Tracker
	Executions core.ExecutionRepository
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
	IsDev      bool         // Reload templates from disk on each request
}

// NewRouter creates and configures the admin HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	api := &APIHandlers{
		Tracker:    services.Tracker,
		Executions: services.Executions,
		Logger:     services.Logger,
	}
	mux.Handle("GET /api/executions", http.HandlerFunc(api.handleListExecutions))
	mux.Handle("GET /api/executions/{id}", http.HandlerFunc(api.handleGetExecution))
	mux.Handle("GET /api/tasks/{name}/should-run", http.HandlerFunc(api.handleShouldRun))
	mux.Handle("GET /api/tasks/{name}/history", http.HandlerFunc(api.handleHistory))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	ui := NewUIHandlers(UIHandlersOptions{
		Executions: services.Executions,
		Logger:     services.Logger,
		IsDev:      services.IsDev,
	})
	if ui != nil {
		mux.Handle("GET /{$}", http.HandlerFunc(ui.handleDashboard))
		mux.Handle("GET /executions", http.HandlerFunc(ui.handleExecutionsList))
		mux.Handle("GET /executions/{id}", http.HandlerFunc(ui.handleExecutionDetail))
	}

	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
