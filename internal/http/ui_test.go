package httpx

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tasktrack/tasktrack/internal/domain/model"
	"github.com/tasktrack/tasktrack/internal/testutil"
)

func TestDashboardPage(t *testing.T) {
	router, repo := newTestRouter(t)

	lastRun := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	repo.EXPECT().CountByTask(gomock.Any()).Return([]model.TaskExecutionCount{
		{TaskName: "prune_sessions", Total: 12, Failures: 2, LastRunAt: &lastRun},
		{TaskName: "seed_accounts", Total: 1, Failures: 0, LastRunAt: nil},
	}, nil)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.TaskExecution{
		sampleExecution("e1", "prune_sessions", true),
	}, nil)

	w := doRequest(t, router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	html := w.Body.String()
	assert.Contains(t, html, "prune_sessions")
	assert.Contains(t, html, "seed_accounts")
	assert.Contains(t, html, "Task Executions")
}

func TestExecutionsListPage(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts model.ExecutionListOptions) ([]*model.TaskExecution, error) {
			// page size is bumped by one to detect the next page
			assert.Equal(t, 3, opts.Limit)
			return []*model.TaskExecution{
				sampleExecution("e3", "prune_sessions", true),
				sampleExecution("e2", "prune_sessions", false),
				sampleExecution("e1", "prune_sessions", true),
			}, nil
		})

	w := doRequest(t, router, http.MethodGet, "/executions?page_size=2")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "e3")
	assert.Contains(t, html, "e2")
	assert.NotContains(t, html, "e1", "extra row past the page size must be dropped")
	assert.Contains(t, html, "Next")
}

func TestExecutionsListPageLookaheadAtMaxPageSize(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts model.ExecutionListOptions) ([]*model.TaskExecution, error) {
			// at the largest page the look-ahead row must still be requested
			assert.Equal(t, 201, opts.Limit)
			executions := make([]*model.TaskExecution, 201)
			for i := range executions {
				executions[i] = sampleExecution(fmt.Sprintf("exec-%03d", i), "prune_sessions", true)
			}
			return executions, nil
		})

	w := doRequest(t, router, http.MethodGet, "/executions?page_size=200")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "Next")
	assert.NotContains(t, html, "exec-200", "look-ahead row must not render")
}

func TestExecutionsListPageBadFilterStillRenders(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/executions?success=maybe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "must be true or false")
}

func TestExecutionDetailPage(t *testing.T) {
	router, repo := newTestRouter(t)

	exec := sampleExecution("e1", "prune_sessions", false)
	exec.ErrorMessage = "deadlock detected"
	exec.Parameters = []byte(`{"batch_size":100}`)
	exec.DurationSeconds = testutil.Float64Ptr(2.5)
	repo.EXPECT().GetByID(gomock.Any(), "e1").Return(exec, nil)

	w := doRequest(t, router, http.MethodGet, "/executions/e1")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "prune_sessions")
	assert.Contains(t, html, "deadlock detected")
	assert.Contains(t, html, "batch_size")
	assert.Contains(t, html, "2.50s")
	assert.Contains(t, html, "Failed")
}

func TestExecutionDetailPageNotFound(t *testing.T) {
	router, repo := newTestRouter(t)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, model.ErrExecutionNotFound)

	w := doRequest(t, router, http.MethodGet, "/executions/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
