// Package analyzer runs the per-requirement rubric and the cross-requirement
// conflict detector over a normalized requirement set and merges their
// findings into a single result.
//
// The analyzer performs no I/O of its own. An optional Logger receives
// progress callbacks; everything else is returned in the AnalysisResult.
package analyzer

import (
	"github.com/harrison/reqlint/internal/models"
	"github.com/harrison/reqlint/internal/validation/conflict"
	"github.com/harrison/reqlint/internal/validation/rubric"
)

// Logger receives analysis progress. All methods must be safe to call from
// the goroutine running Analyze.
type Logger interface {
	LogRequirementIssues(id string, issues []models.Issue)
	LogConflict(c models.Conflict)
	LogSummary(result *models.AnalysisResult)
}

// Options holds every tunable of an analysis run
type Options struct {
	// BannedWords replaces the vague term list. Nil means the built-in list.
	BannedWords           []string
	AvailabilityTolerance float64
	LatencyRatio          float64
}

// DefaultOptions returns the built-in banned words and conflict thresholds
func DefaultOptions() Options {
	return Options{
		BannedWords:           rubric.DefaultBannedWords(),
		AvailabilityTolerance: conflict.DefaultAvailabilityTolerance,
		LatencyRatio:          conflict.DefaultLatencyRatio,
	}
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithBannedWords replaces the vague term list
func WithBannedWords(words []string) Option {
	return func(a *Analyzer) {
		if words != nil {
			a.opts.BannedWords = append([]string(nil), words...)
		}
	}
}

// WithAvailabilityTolerance sets the largest tolerated availability spread in
// percentage points. Zero flags any disagreement; negative values are ignored.
func WithAvailabilityTolerance(points float64) Option {
	return func(a *Analyzer) {
		if points >= 0 {
			a.opts.AvailabilityTolerance = points
		}
	}
}

// WithLatencyRatio sets the largest tolerated max/min latency ratio.
// One flags any disagreement; values below 1 are ignored.
func WithLatencyRatio(ratio float64) Option {
	return func(a *Analyzer) {
		if ratio >= 1 {
			a.opts.LatencyRatio = ratio
		}
	}
}

// WithLogger attaches a progress logger
func WithLogger(logger Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// Analyzer is immutable after New and may be shared between goroutines.
type Analyzer struct {
	opts   Options
	logger Logger
}

// New constructs an Analyzer with DefaultOptions overridden by opts.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{opts: DefaultOptions()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Options returns the effective options
func (a *Analyzer) Options() Options {
	out := a.opts
	out.BannedWords = append([]string(nil), a.opts.BannedWords...)
	return out
}

// Analyze evaluates every requirement in input order, runs conflict
// detection once over the whole set and merges the findings. It never fails:
// records are expected to be normalized already.
func (a *Analyzer) Analyze(reqs []models.Requirement) *models.AnalysisResult {
	result := models.NewAnalysisResult()
	result.Analyzed = len(reqs)

	rubricOpts := rubric.Options{BannedWords: a.opts.BannedWords}
	for _, req := range reqs {
		issues := rubric.Evaluate(req, rubricOpts)
		if len(issues) == 0 {
			continue
		}
		result.AddIssues(req.ID, issues)
		if a.logger != nil {
			a.logger.LogRequirementIssues(req.ID, issues)
		}
	}

	conflicts := conflict.Detect(reqs, conflict.Options{
		AvailabilityTolerance: a.opts.AvailabilityTolerance,
		LatencyRatio:          a.opts.LatencyRatio,
	})
	result.Conflicts = append(result.Conflicts, conflicts...)

	if a.logger != nil {
		for _, c := range conflicts {
			a.logger.LogConflict(c)
		}
		a.logger.LogSummary(result)
	}

	return result
}

// ExitCode maps a result to a process exit code: 0 when passed, 1 otherwise.
// A nil result counts as passed.
func ExitCode(result *models.AnalysisResult) int {
	if result == nil || result.Passed() {
		return 0
	}
	return 1
}
