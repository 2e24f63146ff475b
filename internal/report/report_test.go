package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/reqlint/internal/models"
)

func failingReport() *Report {
	set := &models.RequirementSet{
		Requirements: []models.Requirement{
			{ID: "R1", Kind: models.KindNonFunctional, Text: "Availability 99.9%"},
			{ID: "R2", Kind: models.KindNonFunctional, Text: "The UI should be fast"},
			{ID: "R3", Kind: models.KindNonFunctional, Text: "Availability 99.5%"},
		},
		Sources: []string{"/work/docs/reqs.yaml"},
	}
	result := models.NewAnalysisResult()
	result.Analyzed = 3
	result.AddIssues("R2", []models.Issue{
		{RequirementID: "R2", Rule: models.RuleVagueWording, Message: "vague wording: fast"},
		{RequirementID: "R2", Rule: models.RuleMissingUnit, Message: "non-functional requirement missing measurable unit/metric"},
	})
	result.Conflicts = append(result.Conflicts, models.Conflict{
		Metric:  models.MetricAvailability,
		Claims:  []models.Claim{{RequirementID: "R1", Value: 99.9}, {RequirementID: "R3", Value: 99.5}},
		Message: "conflicting availability targets across requirements → R1:99.9%, R3:99.5%",
	})

	r := New(set, result)
	r.Generated = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return r
}

func TestNew(t *testing.T) {
	r := New(nil, nil)

	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), r.Generated, time.Minute)
	require.NotNil(t, r.Result)
	assert.True(t, r.Result.Passed())
	assert.NotEqual(t, r.RunID, New(nil, nil).RunID)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "json": FormatJSON, "markdown": FormatMarkdown, "md": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestRenderText_Failing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, failingReport(), false))

	want := "- R2:\n" +
		"  • vague wording: fast\n" +
		"  • non-functional requirement missing measurable unit/metric\n" +
		"\nCROSS-REQUIREMENT ISSUES:\n" +
		"  • conflicting availability targets across requirements → R1:99.9%, R3:99.5%\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderText_Passing(t *testing.T) {
	result := models.NewAnalysisResult()
	result.Analyzed = 2

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, New(nil, result), false))
	assert.Equal(t, "Lints: OK\n", buf.String())
}

func TestRenderText_Colored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, failingReport(), true))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "R2")
}

func TestRenderJSON(t *testing.T) {
	r := failingReport()
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, r))

	var decoded struct {
		RunID     string            `json:"run_id"`
		Generated string            `json:"generated"`
		Sources   []string          `json:"sources"`
		Analyzed  int               `json:"analyzed"`
		Passed    bool              `json:"passed"`
		Issues    []models.Issue    `json:"issues"`
		Conflicts []models.Conflict `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, "2026-03-14T09:30:00Z", decoded.Generated)
	assert.Equal(t, []string{"/work/docs/reqs.yaml"}, decoded.Sources)
	assert.Equal(t, 3, decoded.Analyzed)
	assert.False(t, decoded.Passed)
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, models.RuleVagueWording, decoded.Issues[0].Rule)
	require.Len(t, decoded.Conflicts, 1)
	assert.Equal(t, []string{"R1", "R3"}, decoded.Conflicts[0].RequirementIDs())
}

func TestRenderJSON_EmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, New(nil, nil)))

	out := buf.String()
	assert.Contains(t, out, `"issues": []`)
	assert.Contains(t, out, `"conflicts": []`)
	assert.Contains(t, out, `"sources": []`)
	assert.Contains(t, out, `"passed": true`)
}

func TestRenderAdvisory_Failing(t *testing.T) {
	r := failingReport()
	var buf bytes.Buffer
	require.NoError(t, RenderAdvisory(&buf, r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Lint Advisory Report\n_Generated: 2026-03-14_\n"))
	assert.Contains(t, out, "Run: `"+r.RunID+"`")
	assert.Contains(t, out, "Source: `reqs.yaml`")
	assert.Contains(t, out, "**advisory only**")
	assert.Contains(t, out, "## Cross-requirement conflicts\n\n- conflicting availability targets")
	assert.Contains(t, out, "### R2\n\n**Original**: The UI should be fast")
	assert.Contains(t, out, "- vague wording: fast")
	assert.Contains(t, out, "**Suggested fixes:**")
	assert.Contains(t, out, Guidance(models.RuleMissingUnit))
	assert.NotContains(t, out, "### R1")
	assert.Less(t, strings.Index(out, "Cross-requirement"), strings.Index(out, "Requirement-level advice"))
}

func TestRenderAdvisory_Passing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderAdvisory(&buf, New(nil, nil)))

	out := buf.String()
	assert.Contains(t, out, "No lint issues detected by the rule-based linter.")
	assert.NotContains(t, out, "##")
}

func TestGuidanceCoversEveryRule(t *testing.T) {
	for _, rule := range []models.RuleID{
		models.RuleVagueWording, models.RuleMissingUnit, models.RuleAvailabilityUnspecified,
		models.RuleLatencyUnspecified, models.RuleEncryptionScope, models.RuleSecurityControl,
		models.RuleMissingAcceptance,
	} {
		assert.NotEmpty(t, Guidance(rule), "rule %s", rule)
	}
	assert.Empty(t, Guidance("unknown"))
}

func TestRender_Dispatch(t *testing.T) {
	r := failingReport()

	var text, js, md bytes.Buffer
	require.NoError(t, Render(&text, FormatText, r, false))
	require.NoError(t, Render(&js, FormatJSON, r, false))
	require.NoError(t, Render(&md, FormatMarkdown, r, false))

	assert.True(t, strings.HasPrefix(text.String(), "- R2:"))
	assert.True(t, json.Valid(js.Bytes()))
	assert.True(t, strings.HasPrefix(md.String(), "# Lint Advisory Report"))

	assert.Error(t, Render(&text, Format("xml"), r, false))
}
