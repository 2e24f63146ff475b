package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/reqlint/internal/models"
)

// Record type values written by the extractor
const (
	recordTypeFunctional    = "func"
	recordTypeNonFunctional = "nfr"
)

// yamlDocument is the structured requirements file
type yamlDocument struct {
	Requirements []yamlRequirement `yaml:"requirements"`
}

type yamlRequirement struct {
	ID         string     `yaml:"id"`
	Type       string     `yaml:"type"`
	Text       string     `yaml:"text"`
	Priority   string     `yaml:"priority,omitempty"`
	Category   string     `yaml:"category,omitempty"`
	Acceptance stringList `yaml:"acceptance"`
}

// stringList accepts either a YAML sequence or a single scalar
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = stringList{}
			return nil
		}
		*l = stringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = stringList(items)
		return nil
	default:
		return fmt.Errorf("line %d: acceptance must be a list of strings", value.Line)
	}
}

// YAMLParser decodes structured requirement records
type YAMLParser struct{}

// NewYAMLParser creates a new YAML parser
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse decodes the requirements document. Missing fields are left empty for
// RequirementSet.Normalize to default; only malformed YAML is an error.
func (p *YAMLParser) Parse(r io.Reader) (*models.RequirementSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	set := &models.RequirementSet{
		Requirements: make([]models.Requirement, 0, len(doc.Requirements)),
	}
	for _, rec := range doc.Requirements {
		req := models.Requirement{
			ID:         rec.ID,
			Text:       rec.Text,
			Priority:   rec.Priority,
			Category:   rec.Category,
			Acceptance: []string(rec.Acceptance),
		}
		if strings.TrimSpace(rec.Type) != "" {
			req.Kind = models.ParseKind(rec.Type)
		}
		set.Requirements = append(set.Requirements, req)
	}

	return set, nil
}

// MarshalYAML renders a requirement set as the structured records document
// consumed by YAMLParser.
func MarshalYAML(set *models.RequirementSet) ([]byte, error) {
	doc := yamlDocument{Requirements: make([]yamlRequirement, 0)}
	if set != nil {
		for _, req := range set.Requirements {
			acceptance := stringList(req.Acceptance)
			if acceptance == nil {
				acceptance = stringList{}
			}
			doc.Requirements = append(doc.Requirements, yamlRequirement{
				ID:         req.ID,
				Type:       recordType(req.Kind),
				Text:       req.Text,
				Priority:   req.Priority,
				Category:   req.Category,
				Acceptance: acceptance,
			})
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func recordType(kind models.Kind) string {
	switch kind {
	case models.KindFunctional:
		return recordTypeFunctional
	case models.KindNonFunctional:
		return recordTypeNonFunctional
	default:
		return ""
	}
}
