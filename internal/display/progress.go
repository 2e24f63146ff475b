package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// UseColor reports whether w is a terminal that should receive ANSI colors.
// NO_COLOR always disables color.
func UseColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ProgressIndicator reports requirement files as they finish loading.
// Step may be called from several goroutines.
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
	records    int
	colored    bool
	mu         sync.Mutex
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
		colored:    UseColor(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Loading requirement files:\n")
}

// Step displays "[N/Total] filename (k requirements)" for a loaded file
func (p *ProgressIndicator) Step(filename string, records int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	p.records += records
	line := fmt.Sprintf("  [%d/%d] %s (%d requirements)", p.current, p.totalFiles, filepath.Base(filename), records)
	fmt.Fprintln(p.writer, p.paint(color.FgCyan, line))
}

// Complete displays the success line with a green checkmark
func (p *ProgressIndicator) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "%s Loaded %d requirement files (%d requirements)\n", p.paint(color.FgGreen, "✓"), p.totalFiles, p.records)
}

func (p *ProgressIndicator) paint(attr color.Attribute, s string) string {
	if !p.colored {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// DisplaySingleFile shows a simple loading message for a single file
func DisplaySingleFile(w io.Writer, filename string) {
	fmt.Fprintf(w, "Loading requirements from %s...\n", filename)
}
