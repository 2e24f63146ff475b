// Package report renders analysis results for people and machines.
//
// Three renderers share one Report value: a scannable text listing that
// ends in "Lints: OK" on success, indented JSON for tooling, and a Markdown
// advisory document that quotes each failing requirement with rule-based
// guidance. Every report carries a run id and a generation timestamp.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/reqlint/internal/models"
)

// Format selects a renderer
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a --format value onto a Format
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (supported: text, json, markdown)", s)
	}
}

// Report bundles one analysis run with the requirements it covered
type Report struct {
	RunID        string
	Generated    time.Time
	Sources      []string
	Requirements []models.Requirement
	Result       *models.AnalysisResult
}

// New builds a report stamped with a fresh run id and the current time.
// A nil result is treated as an empty, passing one.
func New(set *models.RequirementSet, result *models.AnalysisResult) *Report {
	if result == nil {
		result = models.NewAnalysisResult()
	}
	r := &Report{
		RunID:     uuid.NewString(),
		Generated: time.Now(),
		Result:    result,
	}
	if set != nil {
		r.Sources = set.Sources
		r.Requirements = set.Requirements
	}
	return r
}

// requirement looks up the statement behind an issue id
func (r *Report) requirement(id string) (models.Requirement, bool) {
	for _, req := range r.Requirements {
		if req.ID == id {
			return req, true
		}
	}
	return models.Requirement{}, false
}

// Render writes r in the requested format. colored only affects text output.
func Render(w io.Writer, format Format, r *Report, colored bool) error {
	switch format {
	case FormatText, "":
		return RenderText(w, r, colored)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatMarkdown:
		return RenderAdvisory(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
