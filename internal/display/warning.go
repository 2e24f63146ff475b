package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// maxListedItems caps the detail lines a warning prints before summarising
const maxListedItems = 10

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Details    []string // Individual findings, e.g. normalization notes (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when out is a color terminal
func (w Warning) Display(out io.Writer) {
	w.render(out, UseColor(out))
}

func (w Warning) render(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		fmt.Fprintf(&b, "    %s\n", w.Message)
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	for i, detail := range w.Details {
		if i == maxListedItems {
			fmt.Fprintf(&b, "      ... and %d more\n", len(w.Details)-maxListedItems)
			break
		}
		fmt.Fprintf(&b, "      - %s\n", detail)
	}

	if w.Suggestion != "" {
		fmt.Fprintf(&b, "    Suggestion:\n    %s\n", w.Suggestion)
	}

	if !colored {
		fmt.Fprint(out, b.String())
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

// NormalizationWarning reports the fields that were defaulted while loading source
func NormalizationWarning(source string, notes []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("%d requirement record(s) normalized in %s", len(notes), filepath.Base(source)),
		Details:    notes,
		Suggestion: "Give every record an id, a type (func/nfr) and non-empty text",
	}
}

// IgnoredInputsWarning reports arguments that were skipped during discovery
func IgnoredInputsWarning(files []string) Warning {
	return Warning{
		Title:   "Some inputs contain no requirements",
		Message: "These files parsed cleanly but produced no requirement records.",
		Files:   files,
	}
}
