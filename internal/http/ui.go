package httpx

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/tasktrack/tasktrack/internal/core"
	"github.com/tasktrack/tasktrack/internal/domain/model"
	"github.com/tasktrack/tasktrack/internal/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// devTemplatePath is where templates live relative to the repo root, for
// dev-mode hot reloading.
const devTemplatePath = "internal/http/templates"

// UIHandlersOptions groups dependencies for NewUIHandlers.
type UIHandlersOptions struct {
	Executions core.ExecutionRepository
	Logger     *slog.Logger
	IsDev      bool
}

// UIHandlers renders the read-only HTML pages of the admin surface.
type UIHandlers struct {
	executions core.ExecutionRepository
	logger     *slog.Logger
	isDev      bool
}

// NewUIHandlers constructs the UI handler set. Returns nil when the
// execution repository is missing so the router can skip UI routes.
func NewUIHandlers(opts UIHandlersOptions) *UIHandlers {
	if opts.Executions == nil {
		return nil
	}
	return &UIHandlers{
		executions: opts.Executions,
		logger:     opts.Logger,
		isDev:      opts.IsDev,
	}
}

var templateFuncs = template.FuncMap{
	"fmtTime": func(t any) string {
		switch v := t.(type) {
		case time.Time:
			return v.Local().Format("2006-01-02 15:04:05")
		case *time.Time:
			if v == nil {
				return "—"
			}
			return v.Local().Format("2006-01-02 15:04:05")
		default:
			return ""
		}
	},
	"fmtDuration": util.FormatSeconds,
	"prettyJSON": func(raw json.RawMessage) string {
		if len(raw) == 0 {
			return ""
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return string(raw)
		}
		return buf.String()
	},
	"truncate": func(limit int, value string) string {
		runes := []rune(value)
		if len(runes) > limit {
			return string(runes[:limit]) + "..."
		}
		return value
	},
}

func (h *UIHandlers) templates() (*template.Template, error) {
	var fsys fs.FS = templateFS
	if h.isDev {
		fsys = os.DirFS(devTemplatePath)
		return template.New("").Funcs(templateFuncs).ParseFS(fsys, "*.tmpl")
	}
	return template.New("").Funcs(templateFuncs).ParseFS(fsys, "templates/*.tmpl")
}

// render executes the named page template into a buffer so a template error
// never leaks a half-written page.
func (h *UIHandlers) render(w http.ResponseWriter, name string, data map[string]any) {
	tmpl, err := h.templates()
	if err != nil {
		h.logError("parse templates", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logError("render "+name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *UIHandlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.executions.CountByTask(ctx)
	if err != nil {
		h.logError("dashboard counts", err)
	}
	recent, err := h.executions.List(ctx, model.ExecutionListOptions{Limit: 10})
	if err != nil {
		h.logError("dashboard recent", err)
	}

	h.render(w, "dashboard", map[string]any{
		"Title":  "Task Executions",
		"Counts": counts,
		"Recent": recent,
	})
}

func (h *UIHandlers) handleExecutionsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := getPageParams(q)

	// Fetch one extra row to detect whether a next page exists.
	opts, err := parseExecutionFilters(q, pageOpts{Page: pg.Page, PageSize: pg.PageSize + 1})
	var executions []*model.TaskExecution
	var filterError string
	if err != nil {
		filterError = err.Error()
	} else {
		opts.Offset = (pg.Page - 1) * pg.PageSize
		executions, err = h.executions.List(r.Context(), opts)
		if err != nil {
			h.logError("list executions", err)
			filterError = "Unable to load executions."
		}
	}

	hasNext := len(executions) > pg.PageSize
	if hasNext {
		executions = executions[:pg.PageSize]
	}

	h.render(w, "executions", map[string]any{
		"Title":      "Execution History",
		"Executions": executions,
		"Error":      filterError,
		"Filters": map[string]string{
			"Task":    q.Get("task"),
			"Success": q.Get("success"),
			"From":    q.Get("from"),
			"To":      q.Get("to"),
			"Q":       q.Get("q"),
		},
		"Page":     pg.Page,
		"PrevPage": pg.Page - 1,
		"NextPage": pg.Page + 1,
		"HasPrev":  pg.Page > 1,
		"HasNext":  hasNext,
	})
}

func (h *UIHandlers) handleExecutionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	exec, err := h.executions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrExecutionNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logError("get execution", err)
		http.Error(w, "failed to load execution", http.StatusInternalServerError)
		return
	}

	h.render(w, "execution_detail", map[string]any{
		"Title":     exec.TaskName,
		"Execution": exec,
	})
}

func (h *UIHandlers) logError(op string, err error) {
	logger := h.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("ui request failed", "op", op, "error", err)
}
