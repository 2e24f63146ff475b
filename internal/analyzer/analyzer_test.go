package analyzer

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/reqlint/internal/models"
)

type recordingLogger struct {
	mu        sync.Mutex
	issueIDs  []string
	conflicts []models.Metric
	summaries int
}

func (l *recordingLogger) LogRequirementIssues(id string, issues []models.Issue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issueIDs = append(l.issueIDs, id)
}

func (l *recordingLogger) LogConflict(c models.Conflict) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conflicts = append(l.conflicts, c.Metric)
}

func (l *recordingLogger) LogSummary(result *models.AnalysisResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summaries++
}

func sampleSet() []models.Requirement {
	return []models.Requirement{
		{ID: "R001", Kind: models.KindNonFunctional, Text: "Availability must be 99.9%", Acceptance: []string{}},
		{ID: "R002", Kind: models.KindFunctional, Text: "As a user I can export a report", Acceptance: []string{}},
		{ID: "R003", Kind: models.KindNonFunctional, Text: "System availability should exceed 99.5%", Acceptance: []string{}},
		{ID: "R004", Kind: models.KindNonFunctional, Text: "A fast search with p95<300ms", Acceptance: []string{}},
		{ID: "R005", Kind: models.KindFunctional, Text: "As an admin I can lock accounts", Acceptance: []string{"locked user cannot log in"}},
	}
}

func TestAnalyze_MergesIssuesAndConflicts(t *testing.T) {
	result := New().Analyze(sampleSet())

	assert.Equal(t, 5, result.Analyzed)
	assert.Equal(t, []string{"R002", "R004"}, result.Order)

	wantIssues := map[string][]models.Issue{
		"R002": {{RequirementID: "R002", Rule: models.RuleMissingAcceptance, Message: "functional requirement missing acceptance criteria"}},
		"R004": {{RequirementID: "R004", Rule: models.RuleVagueWording, Message: "vague wording: fast"}},
	}
	if diff := cmp.Diff(wantIssues, result.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.MetricAvailability, result.Conflicts[0].Metric)
	assert.Equal(t, []string{"R001", "R003"}, result.Conflicts[0].RequirementIDs())

	assert.False(t, result.Passed())
	assert.Equal(t, 1, ExitCode(result))
}

func TestAnalyze_CleanSetPasses(t *testing.T) {
	reqs := []models.Requirement{
		{ID: "R1", Kind: models.KindNonFunctional, Text: "Availability 99.9% monthly"},
		{ID: "R2", Kind: models.KindNonFunctional, Text: "Uptime 99.95% for the public API"},
		{ID: "R3", Kind: models.KindFunctional, Text: "As a user I can sign in", Acceptance: []string{"session created"}},
	}

	result := New().Analyze(reqs)

	assert.True(t, result.Passed())
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 0, ExitCode(result))
}

func TestAnalyze_EmptyInput(t *testing.T) {
	result := New().Analyze(nil)

	assert.True(t, result.Passed())
	assert.Equal(t, 0, result.Analyzed)
	assert.Equal(t, 0, ExitCode(result))
}

// TestAnalyze_PassedIffNoFindings checks Passed against the raw counts for several sets
func TestAnalyze_PassedIffNoFindings(t *testing.T) {
	sets := map[string][]models.Requirement{
		"sample": sampleSet(),
		"clean":  {{ID: "R1", Kind: models.KindNonFunctional, Text: "Search p95<300ms"}},
		"conflict only": {
			{ID: "R1", Kind: models.KindNonFunctional, Text: "Latency under 100 ms"},
			{ID: "R2", Kind: models.KindNonFunctional, Text: "Latency under 500 ms"},
		},
		"issue only": {{ID: "R1", Kind: models.KindNone, Text: "An intuitive screen"}},
	}

	for name, reqs := range sets {
		t.Run(name, func(t *testing.T) {
			result := New().Analyze(reqs)
			wantPassed := result.IssueCount() == 0 && len(result.Conflicts) == 0
			assert.Equal(t, wantPassed, result.Passed())
			for id, issues := range result.Issues {
				assert.NotEmpty(t, issues, "sparse map must not hold empty lists")
				for _, issue := range issues {
					assert.Equal(t, id, issue.RequirementID)
				}
			}
		})
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New()
	first := a.Analyze(sampleSet())
	second := a.Analyze(sampleSet())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated analysis differs (-first +second):\n%s", diff)
	}
}

func TestAnalyze_ConcurrentDisjointInputs(t *testing.T) {
	a := New()
	want := a.Analyze(sampleSet())

	var wg sync.WaitGroup
	results := make([]*models.AnalysisResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.Analyze(sampleSet())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("concurrent result differs (-want +got):\n%s", diff)
		}
	}
}

func TestOptions(t *testing.T) {
	a := New(
		WithBannedWords([]string{"tbd"}),
		WithAvailabilityTolerance(1.0),
		WithLatencyRatio(10),
	)

	result := a.Analyze([]models.Requirement{
		{ID: "R1", Kind: models.KindNonFunctional, Text: "Availability 99.9%, value TBD"},
		{ID: "R2", Kind: models.KindNonFunctional, Text: "A fast uptime of 99.5%"},
	})

	assert.Equal(t, []string{"R1"}, result.Order)
	assert.Empty(t, result.Conflicts)
}

func TestOptions_InvalidValuesIgnored(t *testing.T) {
	a := New(WithAvailabilityTolerance(-1), WithLatencyRatio(0.5), WithBannedWords(nil), nil)

	assert.Equal(t, DefaultOptions(), a.Options())
}

func TestOptions_StrictThresholdsAccepted(t *testing.T) {
	a := New(WithAvailabilityTolerance(0), WithLatencyRatio(1))

	assert.Equal(t, 0.0, a.Options().AvailabilityTolerance)
	assert.Equal(t, 1.0, a.Options().LatencyRatio)

	result := a.Analyze([]models.Requirement{
		{ID: "R1", Kind: models.KindNonFunctional, Text: "Availability 99.9%"},
		{ID: "R2", Kind: models.KindNonFunctional, Text: "Availability 99.8%"},
	})
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.MetricAvailability, result.Conflicts[0].Metric)
}

func TestOptions_ReturnsCopy(t *testing.T) {
	a := New()
	opts := a.Options()
	opts.BannedWords[0] = "changed"

	assert.Equal(t, "fast", a.Options().BannedWords[0])
}

func TestAnalyze_Logger(t *testing.T) {
	logger := &recordingLogger{}
	New(WithLogger(logger)).Analyze(sampleSet())

	assert.Equal(t, []string{"R002", "R004"}, logger.issueIDs)
	assert.Equal(t, []models.Metric{models.MetricAvailability}, logger.conflicts)
	assert.Equal(t, 1, logger.summaries)
}

func TestExitCode_Nil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}
