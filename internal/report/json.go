package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/harrison/reqlint/internal/models"
)

type jsonReport struct {
	RunID     string            `json:"run_id"`
	Generated string            `json:"generated"`
	Sources   []string          `json:"sources"`
	Analyzed  int               `json:"analyzed"`
	Passed    bool              `json:"passed"`
	Issues    []models.Issue    `json:"issues"`
	Conflicts []models.Conflict `json:"conflicts"`
}

// RenderJSON writes the report as indented JSON. Issues are flattened in
// input order so consumers need not consult a separate ordering list.
func RenderJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:     r.RunID,
		Generated: r.Generated.UTC().Format(time.RFC3339),
		Sources:   r.Sources,
		Analyzed:  r.Result.Analyzed,
		Passed:    r.Result.Passed(),
		Issues:    make([]models.Issue, 0, r.Result.IssueCount()),
		Conflicts: r.Result.Conflicts,
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	if out.Conflicts == nil {
		out.Conflicts = []models.Conflict{}
	}
	for _, id := range r.Result.Order {
		out.Issues = append(out.Issues, r.Result.Issues[id]...)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
