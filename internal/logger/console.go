// Package logger provides console logging for requirement analysis runs.
//
// ConsoleLogger writes levelled, timestamped lines and implements the
// analyzer's progress callbacks. It is safe for concurrent use: files are
// loaded in parallel and each loader logs independently.
package logger

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/reqlint/internal/display"
	"github.com/harrison/reqlint/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// summaryBarWidth is the width of the clean-requirements bar in LogSummary
const summaryBarWidth = 20

// ConsoleLogger logs analysis progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled automatically when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// An empty or invalid level defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: display.UseColor(writer),
	}
}

// SetColor forces color output on or off
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// Level returns the effective log level
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelValues[normalized]; ok {
		return normalized
	}
	return "info"
}

var levelValues = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// shouldLog checks if a message at the given level passes the configured level.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levelValues[messageLevel] >= levelValues[cl.logLevel]
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel writes "[HH:MM:SS] [LEVEL] message" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

// LogFileLoaded logs a parsed input file at INFO level.
// Format: "[HH:MM:SS] [INFO] Loaded <n> requirement(s) from <file> (<format>)"
func (cl *ConsoleLogger) LogFileLoaded(path string, count int, format string) {
	cl.LogInfo(fmt.Sprintf("Loaded %d requirement(s) from %s (%s)", count, filepath.Base(path), format))
}

// LogNormalization logs a defaulted field or duplicate id at DEBUG level.
// The user-facing summary of the same notes is a display.Warning.
func (cl *ConsoleLogger) LogNormalization(source string, warning string) {
	if source == "" {
		cl.LogDebug(warning)
		return
	}
	cl.LogDebug(fmt.Sprintf("%s: %s", filepath.Base(source), warning))
}

// LogRequirementIssues logs the rules a requirement failed at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] R002: 2 issue(s): vague-wording, missing-unit"
func (cl *ConsoleLogger) LogRequirementIssues(id string, issues []models.Issue) {
	rules := make([]string, 0, len(issues))
	for _, issue := range issues {
		rules = append(rules, string(issue.Rule))
	}
	cl.LogDebug(fmt.Sprintf("%s: %d issue(s): %s", id, len(issues), strings.Join(rules, ", ")))
}

// LogConflict logs a cross-requirement conflict at DEBUG level.
func (cl *ConsoleLogger) LogConflict(c models.Conflict) {
	cl.LogDebug(c.Message)
}

// LogSummary logs the analysis summary at INFO level.
func (cl *ConsoleLogger) LogSummary(result *models.AnalysisResult) {
	if cl.writer == nil || result == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	clean := result.Analyzed - len(result.Issues)
	bar := NewProgressBar(result.Analyzed, summaryBarWidth, cl.colorOutput)
	bar.Update(clean)
	bar.SetPrefix("Clean: ")

	scheme := newColorScheme(cl.colorOutput)
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.header.Sprint("=== Analysis Summary ==="))
	fmt.Fprintf(&sb, "[%s] Requirements analyzed: %d\n", ts, result.Analyzed)
	fmt.Fprintf(&sb, "[%s] %s\n", ts, bar.Render())
	fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.count("Issues", result.IssueCount(), scheme.fail))
	fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.count("Conflicts", len(result.Conflicts), scheme.warn))
	if result.Passed() {
		fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.success.Sprint("Result: passed"))
	} else {
		fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.fail.Sprint("Result: failed"))
	}

	io.WriteString(cl.writer, sb.String())
}

// LogRerun logs a watch-mode re-analysis trigger at INFO level.
func (cl *ConsoleLogger) LogRerun(changed []string) {
	names := make([]string, 0, len(changed))
	for _, p := range changed {
		names = append(names, filepath.Base(p))
	}
	cl.LogInfo(fmt.Sprintf("Change detected (%s), re-running analysis", strings.Join(names, ", ")))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// NoOpLogger discards everything. Useful for tests and --quiet runs.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogRequirementIssues is a no-op implementation.
func (n *NoOpLogger) LogRequirementIssues(id string, issues []models.Issue) {}

// LogConflict is a no-op implementation.
func (n *NoOpLogger) LogConflict(c models.Conflict) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(result *models.AnalysisResult) {}
