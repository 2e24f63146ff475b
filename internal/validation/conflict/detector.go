// Package conflict correlates numeric claims across a whole requirement set
// and reports metrics on which requirements disagree.
//
// It is a disagreement detector, not a resolver: a conflict lists every
// contributing requirement and value and never decides which one is right.
package conflict

import (
	"fmt"
	"strings"

	"github.com/harrison/reqlint/internal/measure"
	"github.com/harrison/reqlint/internal/models"
)

const (
	// DefaultAvailabilityTolerance is the largest spread, in percentage points,
	// tolerated between availability targets.
	DefaultAvailabilityTolerance = 0.2
	// DefaultLatencyRatio is the largest max/min ratio tolerated between latency targets.
	DefaultLatencyRatio = 1.2

	// epsilon absorbs float error so a spread equal to the threshold never exceeds it
	epsilon = 1e-9
)

// Options holds the tolerance thresholds
type Options struct {
	AvailabilityTolerance float64
	LatencyRatio          float64
}

// DefaultOptions returns the documented default thresholds
func DefaultOptions() Options {
	return Options{
		AvailabilityTolerance: DefaultAvailabilityTolerance,
		LatencyRatio:          DefaultLatencyRatio,
	}
}

// metricDef describes how one metric is triggered, extracted and compared
type metricDef struct {
	metric    models.Metric
	mentions  func(string) bool
	extract   func(string) (float64, bool)
	disagree  func(lo, hi float64, opts Options) bool
	formatVal func(float64) string
}

var metrics = []metricDef{
	{
		metric:   models.MetricAvailability,
		mentions: measure.MentionsAvailability,
		extract:  measure.AvailabilityPercent,
		disagree: func(lo, hi float64, opts Options) bool {
			return exceeds(hi-lo, opts.AvailabilityTolerance)
		},
		formatVal: func(v float64) string { return fmt.Sprintf("%g%%", v) },
	},
	{
		metric:   models.MetricLatency,
		mentions: measure.MentionsLatency,
		extract:  measure.LatencyMillis,
		disagree: func(lo, hi float64, opts Options) bool {
			return lo > 0 && exceeds(hi/lo, opts.LatencyRatio)
		},
		formatVal: func(v float64) string { return fmt.Sprintf("%gms", v) },
	},
}

// Detect scans reqs once and returns at most one conflict per metric.
// Requirements whose value cannot be extracted are skipped; buckets with fewer
// than two claims never conflict.
func Detect(reqs []models.Requirement, opts Options) []models.Conflict {
	buckets := make(map[models.Metric][]models.Claim, len(metrics))

	for _, req := range reqs {
		for _, m := range metrics {
			if !m.mentions(req.Text) {
				continue
			}
			if v, ok := m.extract(req.Text); ok {
				buckets[m.metric] = append(buckets[m.metric], models.Claim{
					RequirementID: req.ID,
					Value:         v,
				})
			}
		}
	}

	var conflicts []models.Conflict
	for _, m := range metrics {
		claims := buckets[m.metric]
		if len(claims) < 2 {
			continue
		}

		lo, hi := bounds(claims)
		if !m.disagree(lo, hi, opts) {
			continue
		}

		conflicts = append(conflicts, models.Conflict{
			Metric:  m.metric,
			Claims:  claims,
			Message: formatMessage(m, claims),
		})
	}

	return conflicts
}

// exceeds reports whether v is strictly greater than limit beyond float noise
func exceeds(v, limit float64) bool {
	return v-limit > epsilon
}

func bounds(claims []models.Claim) (float64, float64) {
	lo, hi := claims[0].Value, claims[0].Value
	for _, c := range claims[1:] {
		if c.Value < lo {
			lo = c.Value
		}
		if c.Value > hi {
			hi = c.Value
		}
	}
	return lo, hi
}

func formatMessage(m metricDef, claims []models.Claim) string {
	pairs := make([]string, 0, len(claims))
	for _, c := range claims {
		pairs = append(pairs, fmt.Sprintf("%s:%s", c.RequirementID, m.formatVal(c.Value)))
	}
	return fmt.Sprintf("conflicting %s targets across requirements → %s", m.metric, strings.Join(pairs, ", "))
}
