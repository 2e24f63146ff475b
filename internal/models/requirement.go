package models

import (
	"fmt"
	"strings"
)

// Kind classifies a requirement as a feature behaviour or a quality constraint
type Kind string

const (
	// KindFunctional is a feature behaviour ("As a user I can ...")
	KindFunctional Kind = "functional"
	// KindNonFunctional is a quality constraint (performance, availability, security)
	KindNonFunctional Kind = "non-functional"
	// KindNone marks a record whose kind was missing or unrecognised
	KindNone Kind = "none"
)

// ParseKind maps the spellings used in requirement files onto a Kind.
// Unknown or empty values map to KindNone rather than an error.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "functional", "func", "fr":
		return KindFunctional
	case "non-functional", "nonfunctional", "non_functional", "nfr":
		return KindNonFunctional
	default:
		return KindNone
	}
}

// Requirement is a single requirement statement handed to the analyzer.
// It is treated as immutable once normalized.
type Requirement struct {
	ID         string   // Stable identifier (e.g., "R001")
	Kind       Kind     // functional, non-functional or none
	Text       string   // Free-text statement
	Priority   string   // Priority label (e.g., "M", "high")
	Category   string   // Optional category tag (e.g., "performance")
	Acceptance []string // Acceptance criteria, may be empty
}

// IsFunctional returns true for functional requirements
func (r *Requirement) IsFunctional() bool {
	return r.Kind == KindFunctional
}

// IsNonFunctional returns true for non-functional requirements
func (r *Requirement) IsNonFunctional() bool {
	return r.Kind == KindNonFunctional
}

// RequirementSet is an ordered list of requirements loaded from one or more sources
type RequirementSet struct {
	Requirements []Requirement
	Sources      []string // Files the requirements were loaded from, in load order
}

// Merge appends the requirements and sources of other sets, preserving order
func (s *RequirementSet) Merge(others ...*RequirementSet) {
	for _, o := range others {
		if o == nil {
			continue
		}
		s.Requirements = append(s.Requirements, o.Requirements...)
		s.Sources = append(s.Sources, o.Sources...)
	}
}

// Normalize fills in defaults for missing fields so every downstream rule can
// rely on a well-formed record. It never fails; instead it returns one warning
// per defaulted field or duplicate identifier.
func (s *RequirementSet) Normalize() []string {
	var warnings []string
	seen := make(map[string]bool)

	for i := range s.Requirements {
		r := &s.Requirements[i]

		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			r.ID = fmt.Sprintf("R%03d", i+1)
			for n := 2; seen[r.ID]; n++ {
				r.ID = fmt.Sprintf("R%03d-%d", i+1, n)
			}
			warnings = append(warnings, fmt.Sprintf("requirement at index %d has no id, assigned %s", i, r.ID))
		}
		if seen[r.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate requirement id %s at index %d", r.ID, i))
		}
		seen[r.ID] = true

		if r.Kind == "" {
			r.Kind = KindNone
		}
		if r.Kind == KindNone {
			warnings = append(warnings, fmt.Sprintf("requirement %s has no recognised type, only wording rules apply", r.ID))
		}

		r.Text = strings.TrimSpace(r.Text)
		if r.Text == "" {
			warnings = append(warnings, fmt.Sprintf("requirement %s has empty text", r.ID))
		}

		if r.Acceptance == nil {
			r.Acceptance = []string{}
		}
	}

	return warnings
}

// IDs returns the requirement identifiers in input order
func (s *RequirementSet) IDs() []string {
	ids := make([]string, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		ids = append(ids, r.ID)
	}
	return ids
}
