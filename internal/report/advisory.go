package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/harrison/reqlint/internal/models"
)

// DefaultAdvisoryFile is the name `reqlint report` writes unless told otherwise,
// relative to the configured report directory.
const DefaultAdvisoryFile = "lint_advice.md"

// guidance maps each rule onto a concrete rewrite hint
var guidance = map[models.RuleID]string{
	models.RuleVagueWording:            "Replace vague terms with a measurable statement.",
	models.RuleMissingUnit:             "Include a numeric threshold and unit (ms, %, rps, RTO/RPO or a p95 bound).",
	models.RuleAvailabilityUnspecified: "State availability as a percentage, e.g. 99.9%.",
	models.RuleLatencyUnspecified:      "State latency with a unit, e.g. p95 < 300 ms.",
	models.RuleEncryptionScope:         "Say whether data is encrypted at rest, in transit, or both.",
	models.RuleSecurityControl:         "Name the concrete control or policy (TLS, OAuth2/OIDC, AES, KMS).",
	models.RuleMissingAcceptance:       "Add two or three concise acceptance criteria.",
}

// Guidance returns the rewrite hint for a rule, or "" if none is defined
func Guidance(rule models.RuleID) string {
	return guidance[rule]
}

// RenderAdvisory writes the non-blocking Markdown review. It lists conflicts
// first, then each failing requirement with its original text, issues and
// the matching guidance.
func RenderAdvisory(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("# Lint Advisory Report\n")
	fmt.Fprintf(&b, "_Generated: %s_\n\n", r.Generated.Format("2006-01-02"))
	fmt.Fprintf(&b, "Run: `%s`\n\n", r.RunID)
	if len(r.Sources) > 0 {
		names := make([]string, 0, len(r.Sources))
		for _, s := range r.Sources {
			names = append(names, "`"+filepath.Base(s)+"`")
		}
		fmt.Fprintf(&b, "Source: %s\n\n", strings.Join(names, ", "))
	}
	b.WriteString("> This is **advisory only**. The blocking gate remains `reqlint lint`.\n\n")

	if r.Result.Passed() {
		b.WriteString("No lint issues detected by the rule-based linter.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if len(r.Result.Conflicts) > 0 {
		b.WriteString("## Cross-requirement conflicts\n\n")
		for _, c := range r.Result.Conflicts {
			fmt.Fprintf(&b, "- %s\n", c.Message)
		}
		b.WriteString("\n")
	}

	if len(r.Result.Order) > 0 {
		b.WriteString("## Requirement-level advice\n\n")
	}
	for _, id := range r.Result.Order {
		fmt.Fprintf(&b, "### %s\n\n", id)
		if req, ok := r.requirement(id); ok {
			fmt.Fprintf(&b, "**Original**: %s\n\n", strings.TrimSpace(req.Text))
		}

		issues := r.Result.Issues[id]
		b.WriteString("**Issues:**\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue.Message)
		}

		var hints []string
		seen := make(map[string]bool)
		for _, issue := range issues {
			if h := Guidance(issue.Rule); h != "" && !seen[h] {
				seen[h] = true
				hints = append(hints, h)
			}
		}
		if len(hints) > 0 {
			b.WriteString("\n**Suggested fixes:**\n\n")
			for _, h := range hints {
				fmt.Fprintf(&b, "- %s\n", h)
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
