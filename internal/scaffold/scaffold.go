// Package scaffold generates new task files and their tests from embedded
// templates, the way tasktrack-admin new-task invokes it.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/tasktrack/tasktrack/internal/domain/model"
	apperrors "github.com/tasktrack/tasktrack/internal/errors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Options control one generation run.
type Options struct {
	// Dir is the target package directory for the generated files.
	Dir string
	// Name is the snake_case task name.
	Name string
	// RunOnce marks the generated task as restricted to one successful run.
	RunOnce bool
	// Force overwrites existing generated files.
	Force bool
}

// Result reports the files a generation run wrote.
type Result struct {
	TaskPath string
	TestPath string
}

// templateData is what the task and test templates render with.
type templateData struct {
	Name     string
	TypeName string
	Package  string
	RunOnce  bool
}

// Generate writes a task stub and a matching test stub to convention-derived
// paths under opts.Dir. It refuses to overwrite existing files unless
// opts.Force is set; forced regeneration is idempotent.
func Generate(opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	res := &Result{
		TaskPath: filepath.Join(opts.Dir, opts.Name+".go"),
		TestPath: filepath.Join(opts.Dir, opts.Name+"_test.go"),
	}

	if !opts.Force {
		for _, path := range []string{res.TaskPath, res.TestPath} {
			if _, err := os.Stat(path); err == nil {
				return nil, apperrors.Conflictf("file already exists: %s (use -force to overwrite)", path)
			}
		}
	}

	data := templateData{
		Name:     opts.Name,
		TypeName: typeName(opts.Name),
		Package:  packageName(opts.Dir),
		RunOnce:  opts.RunOnce,
	}

	if err := render("task.go.tmpl", res.TaskPath, data); err != nil {
		return nil, err
	}
	if err := render("task_test.go.tmpl", res.TestPath, data); err != nil {
		return nil, err
	}
	return res, nil
}

func validate(opts Options) error {
	if strings.TrimSpace(opts.Dir) == "" {
		return apperrors.ValidationField("dir", "target directory is required")
	}
	if !model.ValidTaskName(opts.Name) {
		return apperrors.Validationf(
			"task name %q is not valid: use snake_case letters, digits and underscores, starting with a letter",
			opts.Name)
	}

	// The directory itself may not exist yet, but its parent must, so the
	// generator never plants files outside an existing package tree.
	if _, err := os.Stat(opts.Dir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat target directory: %w", err)
		}
		parent := filepath.Dir(filepath.Clean(opts.Dir))
		if _, perr := os.Stat(parent); perr != nil {
			return apperrors.Validationf("target directory %s does not exist", opts.Dir)
		}
	}
	return nil
}

func render(name, path string, data templateData) error {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render template %s: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// typeName converts a snake_case task name to CamelCase, e.g.
// "sync_users" -> "SyncUsers".
func typeName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// packageName derives the generated files' package name from the target
// directory, stripping characters Go identifiers cannot carry.
func packageName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return -1
		}
	}, base)
	if base == "" || (base[0] >= '0' && base[0] <= '9') {
		return "tasks"
	}
	return base
}
