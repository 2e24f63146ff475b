package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// SuccessMarker is printed when a run has no issues and no conflicts
const SuccessMarker = "Lints: OK"

type textPalette struct {
	id, bullet, heading, ok *color.Color
}

func newTextPalette(enabled bool) textPalette {
	p := textPalette{
		id:      color.New(color.FgRed, color.Bold),
		bullet:  color.New(color.FgYellow),
		heading: color.New(color.FgMagenta, color.Bold),
		ok:      color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.id, p.bullet, p.heading, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// RenderText writes one block per failing requirement in input order,
// then the cross-requirement conflicts, or SuccessMarker when clean:
//
//	- R002:
//	  • vague wording: fast
//
//	CROSS-REQUIREMENT ISSUES:
//	  • conflicting availability targets across requirements → R1:99.9%, R2:99.5%
func RenderText(w io.Writer, r *Report, colored bool) error {
	p := newTextPalette(colored)
	var b strings.Builder

	for _, id := range r.Result.Order {
		fmt.Fprintf(&b, "- %s:\n", p.id.Sprint(id))
		for _, issue := range r.Result.Issues[id] {
			fmt.Fprintf(&b, "  %s %s\n", p.bullet.Sprint("•"), issue.Message)
		}
	}

	if len(r.Result.Conflicts) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.heading.Sprint("CROSS-REQUIREMENT ISSUES:"))
		for _, c := range r.Result.Conflicts {
			fmt.Fprintf(&b, "  %s %s\n", p.bullet.Sprint("•"), c.Message)
		}
	}

	if r.Result.Passed() {
		b.WriteString(p.ok.Sprint(SuccessMarker))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
