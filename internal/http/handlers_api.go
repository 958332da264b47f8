package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/domain/model"
	apperrors "github.com/tasktrack/tasktrack/internal/errors"
	"github.com/tasktrack/tasktrack/internal/service"
)

// APIHandlers serves the JSON endpoints of the admin surface.
type APIHandlers struct {
	Tracker    *service.Tracker
	Executions core.ExecutionRepository
	Logger     *slog.Logger
}

func (h *APIHandlers) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	pg := getPageParams(r.URL.Query())
	opts, err := parseExecutionFilters(r.URL.Query(), pg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	executions, err := h.Executions.List(r.Context(), opts)
	if err != nil {
		h.logError(r, "list executions", err)
		writeRepoError(w, err, "failed to list executions")
		return
	}
	if executions == nil {
		executions = []*model.TaskExecution{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"executions": executions,
		"page":       pg.Page,
		"page_size":  pg.PageSize,
	})
}

func (h *APIHandlers) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	exec, err := h.Executions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrExecutionNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "execution not found")
			return
		}
		h.logError(r, "get execution", err)
		writeRepoError(w, err, "failed to load execution")
		return
	}
	writeJSON(w, http.StatusOK, exec)
}

func (h *APIHandlers) handleShouldRun(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	run, err := h.Tracker.ShouldRun(r.Context(), name)
	if err != nil {
		h.logError(r, "should-run", err)
		writeRepoError(w, err, "failed to evaluate should-run")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":       name,
		"should_run": run,
	})
}

func (h *APIHandlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "validation", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := h.Tracker.History(r.Context(), name, limit)
	if err != nil {
		h.logError(r, "history", err)
		writeRepoError(w, err, "failed to load history")
		return
	}
	if history == nil {
		history = []*model.TaskExecution{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":       name,
		"executions": history,
	})
}

func (h *APIHandlers) logError(r *http.Request, op string, err error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(r.Context(), "api request failed",
		"op", op, "path", r.URL.Path, "error", err, "code", apperrors.GetCode(err))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeRepoError picks the response status from the classified error code
// repositories attach via MapDBError. Unclassified errors stay 500.
func writeRepoError(w http.ResponseWriter, err error, message string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeTimeout:
		writeError(w, http.StatusGatewayTimeout, "timeout", message)
	case apperrors.ErrCodeCanceled:
		writeError(w, http.StatusServiceUnavailable, "canceled", message)
	case apperrors.ErrCodeConflict:
		writeError(w, http.StatusConflict, "conflict", message)
	case apperrors.ErrCodeValidation:
		writeError(w, http.StatusBadRequest, "validation", message)
	case apperrors.ErrCodeNotFound:
		writeError(w, http.StatusNotFound, "not_found", message)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", message)
	}
}
