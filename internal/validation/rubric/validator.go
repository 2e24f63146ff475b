// Package rubric evaluates single requirements against the quality rubric:
// vague wording, missing units, unspecific availability, latency and security
// language, and missing acceptance criteria.
//
// Rules run in a fixed order and independently of each other, so a single
// requirement can collect several issues. The rule tables are read-only.
package rubric

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/reqlint/internal/measure"
	"github.com/harrison/reqlint/internal/models"
)

var (
	encryptRe         = regexp.MustCompile(`(?i)\bencrypt(?:ion|ed|s)?\b`)
	encryptionScopeRe = regexp.MustCompile(`(?i)at rest|in transit`)
	securityControlRe = regexp.MustCompile(`(?i)\b(?:tls|mtls|https|oauth2|oidc|kms|aes|fips)\b`)
)

// Options configures the rubric
type Options struct {
	// BannedWords overrides the vague term list. Nil means DefaultBannedWords.
	BannedWords []string
}

func (o Options) bannedWords() []string {
	if o.BannedWords == nil {
		return defaultBannedWords
	}
	return o.BannedWords
}

// Rule is one entry of the rubric
type Rule struct {
	ID          models.RuleID
	Description string
	// Kinds lists the requirement kinds the rule applies to. Empty means all.
	Kinds []models.Kind
	check func(req *models.Requirement, opts Options) (string, bool)
}

// AppliesTo reports whether the rule is evaluated for the given kind
func (r Rule) AppliesTo(kind models.Kind) bool {
	if len(r.Kinds) == 0 {
		return true
	}
	for _, k := range r.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

var nonFunctional = []models.Kind{models.KindNonFunctional}

// rules is evaluated top to bottom; report order follows this slice
var rules = []Rule{
	{
		ID:          models.RuleVagueWording,
		Description: "statement uses vague or banned wording",
		check: func(req *models.Requirement, opts Options) (string, bool) {
			hits := VagueTerms(req.Text, opts.bannedWords())
			if len(hits) == 0 {
				return "", false
			}
			return fmt.Sprintf("vague wording: %s", strings.Join(hits, ", ")), true
		},
	},
	{
		ID:          models.RuleMissingUnit,
		Description: "non-functional requirement has no measurable unit, percentile bound or RTO/RPO",
		Kinds:       nonFunctional,
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if measure.HasMeasurableUnit(req.Text) {
				return "", false
			}
			return "non-functional requirement missing measurable unit/metric (add ms/%/rps, RTO/RPO, or p95 comparator)", true
		},
	},
	{
		ID:          models.RuleAvailabilityUnspecified,
		Description: "availability mentioned without a percentage or 'nines'",
		Kinds:       nonFunctional,
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if !measure.MentionsAvailability(req.Text) {
				return "", false
			}
			if measure.HasExplicitPercent(req.Text) || measure.HasNines(req.Text) {
				return "", false
			}
			return "availability mentioned without explicit percent or 'nines'", true
		},
	},
	{
		ID:          models.RuleLatencyUnspecified,
		Description: "latency or response time mentioned without a millisecond-convertible value",
		Kinds:       nonFunctional,
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if !measure.MentionsLatency(req.Text) {
				return "", false
			}
			if _, ok := measure.LatencyMillis(req.Text); ok {
				return "", false
			}
			return "latency/response-time mentioned without a number + unit (e.g., 300 ms)", true
		},
	},
	{
		ID:          models.RuleEncryptionScope,
		Description: "encryption mentioned without 'at rest' or 'in transit'",
		Kinds:       nonFunctional,
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if !encryptRe.MatchString(req.Text) || encryptionScopeRe.MatchString(req.Text) {
				return "", false
			}
			return "encryption mentioned; specify 'at rest' and/or 'in transit'", true
		},
	},
	{
		ID:          models.RuleSecurityControl,
		Description: "'secure' used without naming a concrete control",
		Kinds:       nonFunctional,
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if !strings.Contains(strings.ToLower(req.Text), "secure") || securityControlRe.MatchString(req.Text) {
				return "", false
			}
			return "security vague: reference concrete control (TLS/mTLS, OAuth2/OIDC, AES, KMS, etc.)", true
		},
	},
	{
		ID:          models.RuleMissingAcceptance,
		Description: "functional requirement has no acceptance criteria",
		Kinds:       []models.Kind{models.KindFunctional},
		check: func(req *models.Requirement, _ Options) (string, bool) {
			if len(req.Acceptance) > 0 {
				return "", false
			}
			return "functional requirement missing acceptance criteria", true
		},
	},
}

// Rules returns the rubric in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Evaluate runs every applicable rule against req and returns the issues in
// rule order. A clean requirement yields nil.
func Evaluate(req models.Requirement, opts Options) []models.Issue {
	var issues []models.Issue

	for _, rule := range rules {
		if !rule.AppliesTo(req.Kind) {
			continue
		}
		if msg, failed := rule.check(&req, opts); failed {
			issues = append(issues, models.Issue{
				RequirementID: req.ID,
				Rule:          rule.ID,
				Message:       msg,
			})
		}
	}

	return issues
}
