package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/reqlint/internal/analyzer"
	"github.com/harrison/reqlint/internal/config"
	"github.com/harrison/reqlint/internal/display"
	"github.com/harrison/reqlint/internal/logger"
	"github.com/harrison/reqlint/internal/models"
	"github.com/harrison/reqlint/internal/parser"
)

// commandContext returns the command's context, or Background when the
// command was not started through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// addAnalysisFlags registers the flags shared by every command that analyzes
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: nearest .reqlint/config.yaml)")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.Flags().Float64("availability-tolerance", 0, "Largest tolerated availability spread in percentage points")
	cmd.Flags().Float64("latency-ratio", 0, "Largest tolerated max/min latency ratio")
	cmd.Flags().StringArray("banned-word", nil, "Additional vague term to flag (repeatable)")
}

// loadConfig resolves the config file, then applies the flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path, err := config.ResolveConfigPath(explicit, "")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logLevelPtr, formatPtr *string
	var tolerancePtr, ratioPtr *float64
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		formatPtr = &v
	}
	if cmd.Flags().Changed("availability-tolerance") {
		v, _ := cmd.Flags().GetFloat64("availability-tolerance")
		tolerancePtr = &v
	}
	if cmd.Flags().Changed("latency-ratio") {
		v, _ := cmd.Flags().GetFloat64("latency-ratio")
		ratioPtr = &v
	}
	var extra []string
	if cmd.Flags().Changed("banned-word") {
		extra, _ = cmd.Flags().GetStringArray("banned-word")
	}
	cfg.MergeWithFlags(logLevelPtr, formatPtr, tolerancePtr, ratioPtr, extra)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newAnalyzer builds an analyzer from the effective configuration
func newAnalyzer(cfg *config.Config, log analyzer.Logger) *analyzer.Analyzer {
	return analyzer.New(
		analyzer.WithBannedWords(cfg.EffectiveBannedWords()),
		analyzer.WithAvailabilityTolerance(cfg.AvailabilityTolerance),
		analyzer.WithLatencyRatio(cfg.LatencyRatio),
		analyzer.WithLogger(log),
	)
}

// loadRequirements resolves paths, parses every file concurrently and
// returns one normalized set whose records follow argument order.
// Progress and warnings go to status; the set itself is never printed.
func loadRequirements(ctx context.Context, paths []string, status io.Writer, log *logger.ConsoleLogger) (*models.RequirementSet, error) {
	files, err := parser.ResolveInputs(paths)
	if err != nil {
		return nil, err
	}

	var progress *display.ProgressIndicator
	if len(files) > 1 {
		progress = display.NewProgressIndicator(status, len(files))
		progress.Start()
	} else {
		display.DisplaySingleFile(status, files[0])
	}

	sets := make([]*models.RequirementSet, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := parser.ParseFile(file)
			if err != nil {
				return err
			}
			sets[i] = set
			log.LogFileLoaded(file, len(set.Requirements), parser.DetectFormat(file).String())
			if progress != nil {
				progress.Step(file, len(set.Requirements))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if progress != nil {
		progress.Complete()
	}

	var empty []string
	for i, set := range sets {
		if len(set.Requirements) == 0 {
			empty = append(empty, files[i])
		}
	}
	if len(empty) > 0 {
		display.IgnoredInputsWarning(empty).Display(status)
	}

	merged := &models.RequirementSet{}
	merged.Merge(sets...)

	if notes := merged.Normalize(); len(notes) > 0 {
		label := fmt.Sprintf("%d files", len(files))
		source := ""
		if len(files) == 1 {
			label, source = files[0], files[0]
		}
		for _, note := range notes {
			log.LogNormalization(source, note)
		}
		display.NormalizationWarning(filepath.Base(label), notes).Display(status)
	}

	return merged, nil
}
