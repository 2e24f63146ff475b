package parser

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/requirements.schema.json
var requirementsSchema []byte

var requirementsSchemaLoader = gojsonschema.NewBytesLoader(requirementsSchema)

// DefaultSchema returns the built-in JSON schema for requirement records
func DefaultSchema() []byte {
	out := make([]byte, len(requirementsSchema))
	copy(out, requirementsSchema)
	return out
}

// SchemaViolation is one reason a document does not satisfy the schema
type SchemaViolation struct {
	Field       string
	Description string
}

func (v SchemaViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Description)
}

// ValidateSchema validates a YAML or JSON requirements document against the
// built-in schema and returns every violation. The error is reserved for
// input that cannot be decoded at all.
func ValidateSchema(data []byte) ([]SchemaViolation, error) {
	return validate(requirementsSchemaLoader, data)
}

// ValidateSchemaWith validates data against a caller-supplied JSON schema
func ValidateSchemaWith(schema, data []byte) ([]SchemaViolation, error) {
	return validate(gojsonschema.NewBytesLoader(schema), data)
}

func validate(schemaLoader gojsonschema.JSONLoader, data []byte) ([]SchemaViolation, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(jsonCompatible(doc)))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	violations := make([]SchemaViolation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, SchemaViolation{
			Field:       desc.Field(),
			Description: desc.Description(),
		})
	}
	return violations, nil
}

// jsonCompatible converts the map[interface{}]interface{} values yaml can
// produce for non-string keys into string-keyed maps
func jsonCompatible(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = jsonCompatible(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = jsonCompatible(item)
		}
		return out
	default:
		return v
	}
}
