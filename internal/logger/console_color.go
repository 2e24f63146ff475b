package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for summary lines.
// Green: clean results, Red: issues, Yellow: conflicts, Bold: headers.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	header  *color.Color
}

// newColorScheme creates the summary color scheme. When enabled is false
// every color prints plain text regardless of terminal detection.
func newColorScheme(enabled bool) *colorScheme {
	scheme := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		header:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{scheme.success, scheme.fail, scheme.warn, scheme.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return scheme
}

// count formats "Label: n", colored with nonZero when n > 0 and green otherwise.
func (s *colorScheme) count(label string, n int, nonZero *color.Color) string {
	text := fmt.Sprintf("%s: %d", label, n)
	if n > 0 {
		return nonZero.Sprint(text)
	}
	return s.success.Sprint(text)
}

// levelColor returns the color used for a level label.
func levelColor(level string) *color.Color {
	var c *color.Color
	switch strings.ToUpper(level) {
	case "TRACE":
		c = color.New(color.FgHiBlack)
	case "DEBUG":
		c = color.New(color.FgCyan)
	case "INFO":
		c = color.New(color.FgBlue)
	case "WARN":
		c = color.New(color.FgYellow)
	case "ERROR":
		c = color.New(color.FgRed)
	default:
		c = color.New(color.Reset)
	}
	// The caller already decided color output is wanted
	c.EnableColor()
	return c
}
