package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/reqlint/internal/parser"
)

// ErrSchemaInvalid is returned when a records file violates the schema
var ErrSchemaInvalid = errors.New("schema validation failed")

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <yaml-file>",
		Short: "Validate a requirements YAML file against the JSON schema",
		Long: `Check the structure of a requirements YAML file: a top-level
"requirements" list whose records carry an id, a type (func/nfr) and
non-empty text. Every violation is reported, not just the first.

Use --schema to validate against a different JSON schema.

Exit code: 0 if valid, 1 if the file has schema violations, 2 on errors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			return runValidate(cmd, args[0], schemaPath)
		},
	}

	cmd.Flags().String("schema", "", "Path to a JSON schema (default: built-in requirements schema)")

	return cmd
}

func runValidate(cmd *cobra.Command, path, schemaPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var violations []parser.SchemaViolation
	if schemaPath == "" {
		violations, err = parser.ValidateSchema(data)
	} else {
		schema, readErr := os.ReadFile(schemaPath)
		if readErr != nil {
			return fmt.Errorf("failed to read schema %s: %w", schemaPath, readErr)
		}
		violations, err = parser.ValidateSchemaWith(schema, data)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(violations) == 0 {
		fmt.Fprintln(out, "Schema validation: OK")
		return nil
	}

	fmt.Fprintf(out, "Schema validation failed for %s:\n", path)
	for _, v := range violations {
		fmt.Fprintf(out, "  - %s\n", v)
	}
	return fmt.Errorf("%w with %d error(s)", ErrSchemaInvalid, len(violations))
}
