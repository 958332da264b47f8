// Command tasktrack-admin is the operational CLI: it applies migrations,
// scaffolds new task files, inspects execution history, evaluates the
// should-run predicate, and records executions by hand.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tasktrack/tasktrack/config"
	"github.com/tasktrack/tasktrack/internal/bootstrap"
	"github.com/tasktrack/tasktrack/internal/data"
	"github.com/tasktrack/tasktrack/internal/domain/model"
	"github.com/tasktrack/tasktrack/internal/scaffold"
	"github.com/tasktrack/tasktrack/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

// errSkip signals the should-run command's "skip" outcome so main can exit
// with a distinct status for shell scripting.
var errSkip = errors.New("skip")

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		if errors.Is(runErr, errSkip) {
			os.Exit(3)
		}
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrate,
		},
		"new-task": {
			name:        "new-task",
			description: "Generate a new tracked task file and its test file",
			run:         runNewTask,
		},
		"history": {
			name:        "history",
			description: "Print recent executions of a task, newest first",
			run:         runHistory,
		},
		"should-run": {
			name:        "should-run",
			description: "Report whether a task should run (exit 0) or be skipped (exit 3)",
			run:         runShouldRun,
		},
		"record": {
			name:        "record",
			description: "Manually record one task execution",
			run:         runRecord,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: tasktrack-admin <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = tw.Flush()
}

func runMigrate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultMigrationTimeout, "migration timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, *timeout)
	defer cancel()

	return withDatabase(cmdCtx, func(db *sql.DB) error {
		return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
	})
}

func runNewTask(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("new-task", flag.ContinueOnError)
	dir := fs.String("dir", "", "target package directory for the generated files (required)")
	name := fs.String("name", "", "snake_case task name (required)")
	runOnce := fs.Bool("run-once", false, "restrict the generated task to one successful run")
	force := fs.Bool("force", false, "overwrite existing generated files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" || *name == "" {
		fs.Usage()
		return errors.New("-dir and -name are required")
	}

	res, err := scaffold.Generate(scaffold.Options{
		Dir:     *dir,
		Name:    *name,
		RunOnce: *runOnce,
		Force:   *force,
	})
	if err != nil {
		return err
	}

	fmt.Println("Successfully created task files:")
	fmt.Printf("  Task: %s\n", res.TaskPath)
	fmt.Printf("  Test: %s\n", res.TestPath)
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s and implement the task logic\n", res.TaskPath)
	fmt.Printf("  2. Extend %s with task-specific assertions\n", res.TestPath)
	return nil
}

func runHistory(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	task := fs.String("task", "", "task name (required)")
	n := fs.Int("n", 20, "maximum number of records to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *task == "" {
		fs.Usage()
		return errors.New("-task is required")
	}

	return withDatabase(cmdCtx, func(db *sql.DB) error {
		repo := data.NewExecutionRepo(db)
		history, err := repo.History(cmdCtx.Ctx, *task, *n)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Printf("no executions recorded for task %q\n", *task)
			return nil
		}
		return printHistory(os.Stdout, history)
	})
}

func printHistory(w io.Writer, history []*model.TaskExecution) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXECUTED AT\tSTATUS\tDURATION\tRUN ONCE\tERROR")
	for _, exec := range history {
		duration := "-"
		if exec.DurationSeconds != nil {
			duration = fmt.Sprintf("%.2fs", *exec.DurationSeconds)
		}
		errMsg := exec.ErrorMessage
		if len(errMsg) > 60 {
			errMsg = errMsg[:60] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			exec.ExecutedAt.Local().Format(time.RFC3339),
			exec.Status(),
			duration,
			exec.RunOnce,
			errMsg,
		)
	}
	return tw.Flush()
}

func runShouldRun(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("should-run", flag.ContinueOnError)
	task := fs.String("task", "", "task name (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *task == "" {
		fs.Usage()
		return errors.New("-task is required")
	}

	return withDatabase(cmdCtx, func(db *sql.DB) error {
		tracker := service.NewTracker(service.TrackerOptions{
			Repo:   data.NewExecutionRepo(db),
			Logger: cmdCtx.Logger,
		})
		run, err := tracker.ShouldRun(cmdCtx.Ctx, *task)
		if err != nil {
			return err
		}
		if !run {
			fmt.Printf("skip: task %q already executed successfully with run-once set\n", *task)
			return errSkip
		}
		fmt.Printf("run: task %q should execute\n", *task)
		return nil
	})
}

func runRecord(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	task := fs.String("task", "", "task name (required)")
	success := fs.Bool("success", true, "whether the execution succeeded")
	output := fs.String("output", "", "captured output text")
	errText := fs.String("error", "", "captured error text")
	duration := fs.Float64("duration", 0, "elapsed duration in seconds (0 leaves it unset)")
	runOnce := fs.Bool("run-once", false, "mark the task as restricted to one successful run")
	params := fs.String("params", "", "parameters as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *task == "" {
		fs.Usage()
		return errors.New("-task is required")
	}

	var parameters json.RawMessage
	if strings.TrimSpace(*params) != "" {
		if !json.Valid([]byte(*params)) {
			return fmt.Errorf("-params is not valid JSON: %s", *params)
		}
		parameters = json.RawMessage(*params)
	}
	var dur *float64
	if *duration > 0 {
		dur = duration
	}

	return withDatabase(cmdCtx, func(db *sql.DB) error {
		repo := data.NewExecutionRepo(db)
		exec, err := repo.Record(cmdCtx.Ctx, model.RecordExecutionParams{
			TaskName:        *task,
			Success:         *success,
			Parameters:      parameters,
			Output:          *output,
			ErrorMessage:    *errText,
			DurationSeconds: dur,
			RunOnce:         *runOnce,
		})
		if err != nil {
			return err
		}
		fmt.Printf("recorded execution %s for task %q (%s)\n", exec.ID, exec.TaskName, exec.Status())
		return nil
	})
}

func withDatabase(cmdCtx *commandContext, fn func(db *sql.DB) error) error {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, "close database failed", "error", cerr)
		}
	}()
	return fn(db)
}
