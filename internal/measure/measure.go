// Package measure extracts measurable quantities from requirement text.
//
// All matching is literal: a requirement is "measurable" when it carries a
// number with a recognised unit, a percentile bound with a comparator, or a
// recovery objective marker. Metric extraction returns the FIRST match in text
// order. A statement naming two latency figures yields the first one, which is
// not necessarily the one the author meant; callers must not rely on anything
// smarter.
package measure

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// number immediately followed by a time, rate or percentage unit
	numberUnitRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:%|(?:ms|s|sec|seconds?|rps|qps|req/s|tps|percent|w|weeks?|m|min|mins|minutes?|h|hr|hrs|hours?)\b)`)

	percentileRe = regexp.MustCompile(`(?i)\bp9[59]\b`)
	comparatorRe = regexp.MustCompile(`(?:<=|>=|<|>)\s*\d+(?:\.\d+)?`)
	recoveryRe   = regexp.MustCompile(`(?i)\b(?:rto|rpo)\b`)

	percentRe = regexp.MustCompile(`\b(\d{2,3}(?:\.\d+)?)\s*%`)
	ninesRe   = regexp.MustCompile(`(?i)\b([2-9]|two|three|four|five|six|seven|eight|nine)\s*nines\b`)

	millisRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*ms\b`)
	secondsRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*s(?:ec|econds?)?\b`)

	availabilityTriggerRe = regexp.MustCompile(`(?i)\b(?:availability|uptime)\b`)
	latencyTriggerRe      = regexp.MustCompile(`(?i)\b(?:latency|response\s*times?|rt)\b`)
)

var ninesWords = map[string]int{
	"two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9,
}

// HasMeasurableUnit reports whether text carries any measurable form:
// a number with a unit, a p95/p99 marker with a comparator bound, or RTO/RPO.
func HasMeasurableUnit(text string) bool {
	if numberUnitRe.MatchString(text) {
		return true
	}
	if percentileRe.MatchString(text) && comparatorRe.MatchString(text) {
		return true
	}
	return recoveryRe.MatchString(text)
}

// MentionsAvailability reports whether text talks about availability or uptime
func MentionsAvailability(text string) bool {
	return availabilityTriggerRe.MatchString(text)
}

// MentionsLatency reports whether text talks about latency or response time
func MentionsLatency(text string) bool {
	return latencyTriggerRe.MatchString(text)
}

// HasExplicitPercent reports whether text contains an explicit percentage
func HasExplicitPercent(text string) bool {
	return percentRe.MatchString(text)
}

// HasNines reports whether text uses "N nines" phrasing
func HasNines(text string) bool {
	return ninesRe.MatchString(text)
}

// AvailabilityPercent extracts an availability percentage. An explicit
// percentage wins; otherwise "N nines" converts to 100 - 10^-N * 100.
// The boolean is false when no value can be extracted.
func AvailabilityPercent(text string) (float64, bool) {
	if m := percentRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}

	if m := ninesRe.FindStringSubmatch(text); m != nil {
		n, ok := parseNinesCount(m[1])
		if !ok {
			return 0, false
		}
		return NinesToPercent(n), true
	}

	return 0, false
}

// NinesToPercent converts a count of nines to a percentage (3 -> 99.9)
func NinesToPercent(n int) float64 {
	return 100 - math.Pow(10, -float64(n))*100
}

// LatencyMillis extracts a latency in milliseconds. A millisecond figure wins;
// otherwise a seconds figure is converted. The boolean is false when no value
// can be extracted.
func LatencyMillis(text string) (float64, bool) {
	if m := millisRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}

	if m := secondsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v * 1000, true
		}
	}

	return 0, false
}

func parseNinesCount(s string) (int, bool) {
	s = strings.ToLower(s)
	if n, ok := ninesWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
