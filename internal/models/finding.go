package models

// RuleID identifies one rule of the per-requirement rubric
type RuleID string

const (
	RuleVagueWording            RuleID = "vague-wording"
	RuleMissingUnit             RuleID = "missing-unit"
	RuleAvailabilityUnspecified RuleID = "availability-unspecified"
	RuleLatencyUnspecified      RuleID = "latency-unspecified"
	RuleEncryptionScope         RuleID = "encryption-scope"
	RuleSecurityControl         RuleID = "security-control"
	RuleMissingAcceptance       RuleID = "missing-acceptance"
)

// Metric names a category of numeric claim correlated across requirements
type Metric string

const (
	MetricAvailability Metric = "availability"
	MetricLatency      Metric = "latency"
)

// Issue is a blocking finding against a single requirement
type Issue struct {
	RequirementID string `json:"requirement_id"`
	Rule          RuleID `json:"rule"`
	Message       string `json:"message"`
}

// Claim is a numeric value extracted from one requirement
type Claim struct {
	RequirementID string  `json:"requirement_id"`
	Value         float64 `json:"value"`
}

// Conflict reports that requirements disagree on the same metric.
// It never names a winner.
type Conflict struct {
	Metric  Metric  `json:"metric"`
	Claims  []Claim `json:"claims"`
	Message string  `json:"message"`
}

// RequirementIDs returns the identifiers of every contributing requirement
func (c *Conflict) RequirementIDs() []string {
	ids := make([]string, 0, len(c.Claims))
	for _, claim := range c.Claims {
		ids = append(ids, claim.RequirementID)
	}
	return ids
}

// AnalysisResult holds the findings of one analysis run.
// Issues is sparse: requirements without issues have no entry.
type AnalysisResult struct {
	Issues    map[string][]Issue `json:"issues"`
	Order     []string           `json:"order"` // IDs with issues, in input order
	Conflicts []Conflict         `json:"conflicts"`
	Analyzed  int                `json:"analyzed"`
}

// NewAnalysisResult creates an empty result
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Issues:    make(map[string][]Issue),
		Order:     []string{},
		Conflicts: []Conflict{},
	}
}

// AddIssues records the issues for one requirement. Empty lists are dropped.
func (r *AnalysisResult) AddIssues(id string, issues []Issue) {
	if len(issues) == 0 {
		return
	}
	if _, exists := r.Issues[id]; !exists {
		r.Order = append(r.Order, id)
	}
	r.Issues[id] = append(r.Issues[id], issues...)
}

// Passed returns true when there are no issues and no conflicts
func (r *AnalysisResult) Passed() bool {
	return len(r.Issues) == 0 && len(r.Conflicts) == 0
}

// IssueCount returns the total number of per-requirement issues
func (r *AnalysisResult) IssueCount() int {
	count := 0
	for _, issues := range r.Issues {
		count += len(issues)
	}
	return count
}
