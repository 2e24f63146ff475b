package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/reqlint/internal/analyzer"
	"github.com/harrison/reqlint/internal/config"
	"github.com/harrison/reqlint/internal/display"
	"github.com/harrison/reqlint/internal/filelock"
	"github.com/harrison/reqlint/internal/logger"
	"github.com/harrison/reqlint/internal/report"
	"github.com/harrison/reqlint/internal/watch"
)

// ErrLintFailed is returned when analysis produced issues or conflicts
var ErrLintFailed = errors.New("lint failed: requirements have issues or conflicts")

// NewLintCommand creates and returns the lint subcommand
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file-or-directory>...",
		Short: "Check requirements for quality issues and conflicts",
		Long: `Load requirements from Markdown or YAML files, evaluate each one against
the quality rubric and detect contradicting availability and latency targets.

Supports multiple input modes:
  - Single file: reqlint lint requirements.yaml
  - Directory: reqlint lint docs/requirements/ (all .md, .markdown, .yaml, .yml)
  - Multiple files: reqlint lint functional.md nfr.yaml

All inputs are analyzed as one set, so conflicts are found across files.

Exit code: 0 if clean, 1 if issues or conflicts were found, 2 on errors`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLint,
	}

	addAnalysisFlags(cmd)
	cmd.Flags().String("format", "", "Output format: text or json (default: text)")
	cmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolP("watch", "w", false, "Re-run analysis whenever an input file changes")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	watchMode, _ := cmd.Flags().GetBool("watch")

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	run := &lintRun{
		cfg:      cfg,
		paths:    args,
		format:   format,
		outPath:  outPath,
		stdout:   cmd.OutOrStdout(),
		status:   cmd.ErrOrStderr(),
		log:      log,
		analyzer: newAnalyzer(cfg, log),
	}

	ctx := commandContext(cmd)

	if !watchMode {
		passed, err := run.once(ctx)
		if err != nil {
			return err
		}
		if !passed {
			return ErrLintFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run.watch(ctx)
}

// lintRun holds everything one lint invocation needs to analyze repeatedly
type lintRun struct {
	cfg      *config.Config
	paths    []string
	format   report.Format
	outPath  string
	stdout   io.Writer
	status   io.Writer
	log      *logger.ConsoleLogger
	analyzer *analyzer.Analyzer

	mu sync.Mutex
}

// once loads, analyzes and renders a single time and reports whether the
// requirements passed.
func (r *lintRun) once(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, err := loadRequirements(ctx, r.paths, r.status, r.log)
	if err != nil {
		return false, err
	}

	// Analyze logs the summary through r.log
	result := r.analyzer.Analyze(set.Requirements)
	rep := report.New(set, result)

	if r.outPath == "" {
		if err := report.Render(r.stdout, r.format, rep, display.UseColor(r.stdout)); err != nil {
			return false, err
		}
	} else {
		var buf bytes.Buffer
		if err := report.Render(&buf, r.format, rep, false); err != nil {
			return false, err
		}
		if err := filelock.LockAndWrite(ctx, r.outPath, buf.Bytes()); err != nil {
			return false, fmt.Errorf("failed to write report: %w", err)
		}
		r.log.LogInfo(fmt.Sprintf("Wrote %s", r.outPath))
	}

	return analyzer.ExitCode(result) == 0, nil
}

// watch runs once, then again after every debounced batch of input changes,
// until ctx is cancelled. Findings never stop the loop.
func (r *lintRun) watch(ctx context.Context) error {
	if _, err := r.once(ctx); err != nil {
		return err
	}

	w, err := watch.New(r.cfg.WatchDebounce, func(changed []string) {
		r.log.LogRerun(changed)
		if _, err := r.once(ctx); err != nil {
			r.log.LogError(err.Error())
		}
	})
	if err != nil {
		return err
	}
	if err := w.AddPaths(r.paths); err != nil {
		w.Close()
		return err
	}
	w.OnError(func(err error) {
		r.log.LogWarn(err.Error())
	})

	r.log.LogInfo("Watching for changes (Ctrl+C to stop)")
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
